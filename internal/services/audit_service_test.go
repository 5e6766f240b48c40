package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgeteer/internal/models"
	"budgeteer/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(db)

	svc.Log(AuditActionCreate, "category", "groceries", "10.0.0.1", map[string]interface{}{"name": "Groceries"})
	svc.Log(AuditActionDelete, "transaction", "abc", "10.0.0.2", nil)

	var entries []models.AuditLog
	require.NoError(t, db.Order("created_at ASC").Find(&entries).Error)
	require.Len(t, entries, 2)

	assert.Equal(t, AuditActionCreate, entries[0].Action)
	assert.Equal(t, "category", entries[0].ResourceType)
	assert.Equal(t, "groceries", entries[0].ResourceID)
	assert.Equal(t, "10.0.0.1", entries[0].IPAddress)
	assert.JSONEq(t, `{"name":"Groceries"}`, entries[0].Changes)
	assert.Empty(t, entries[1].Changes)
}

func TestAuditLogFailureDoesNotPanic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(db)
	require.NoError(t, db.Migrator().DropTable(&models.AuditLog{}))

	assert.NotPanics(t, func() {
		svc.Log(AuditActionUpdate, "budget", "main", "127.0.0.1", map[string]interface{}{"bad": make(chan int)})
	})
}
