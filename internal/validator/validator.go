// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"budgeteer/internal/models"
)

// Amounts are stored as numeric(11,2).
const (
	maxIntegerDigits  = 9
	maxFractionDigits = 2
)

var maxMoney = decimal.New(1, maxIntegerDigits)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn installs the custom type func and tags on v.
func RegisterOn(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("money", validateMoney)
}

// decimalValue exposes decimals to the validator as their string form so that
// "required" and "money" can inspect them.
func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		return d.String()
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		return d.Decimal.String()
	}
	return nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

// validateMoney accepts positive amounts with at most two decimal places that
// fit a numeric(11,2) column.
func validateMoney(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	d, err := decimal.NewFromString(field.String())
	if err != nil {
		return false
	}
	return ValidMoney(d)
}

// ValidMoney reports whether d is a storable positive amount.
func ValidMoney(d decimal.Decimal) bool {
	if !d.IsPositive() {
		return false
	}
	if d.Exponent() < -maxFractionDigits && !d.Equal(d.Round(maxFractionDigits)) {
		return false
	}
	return d.LessThan(maxMoney)
}
