package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgeteer/internal/models"
	"budgeteer/internal/period"
	"budgeteer/internal/services"
)

// --- mock summary service ---

type mockSummaryService struct {
	monthsFn func() ([]period.YearMonth, error)
	yearFn   func(year int) (*services.PeriodSummary, error)
	monthFn  func(year int, month time.Month) (*services.PeriodSummary, error)
}

func (m *mockSummaryService) Months() ([]period.YearMonth, error) {
	if m.monthsFn != nil {
		return m.monthsFn()
	}
	return []period.YearMonth{}, nil
}

func (m *mockSummaryService) Year(year int) (*services.PeriodSummary, error) {
	if m.yearFn != nil {
		return m.yearFn(year)
	}
	return &services.PeriodSummary{Period: period.Year(year), Rows: []services.SummaryRow{}}, nil
}

func (m *mockSummaryService) Month(year int, month time.Month) (*services.PeriodSummary, error) {
	if m.monthFn != nil {
		return m.monthFn(year, month)
	}
	r, _ := period.Month(year, month)
	return &services.PeriodSummary{Period: r, Rows: []services.SummaryRow{}}, nil
}

var _ services.SummaryServicer = (*mockSummaryService)(nil)

func setupSummaryRouter(handler *SummaryHandler) *gin.Engine {
	r := gin.New()
	r.GET("/summary", handler.ListMonths)
	r.GET("/summary/:year", handler.GetYear)
	r.GET("/summary/:year/:month", handler.GetMonth)
	return r
}

func TestSummaryHandler_ListMonths(t *testing.T) {
	svc := &mockSummaryService{
		monthsFn: func() ([]period.YearMonth, error) {
			return []period.YearMonth{{Year: 2024, Month: time.March}, {Year: 2023, Month: time.December}}, nil
		},
	}
	r := setupSummaryRouter(NewSummaryHandler(svc))

	rec := doRequest(r, "GET", "/summary", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	months := parseJSON(t, rec)["months"].([]interface{})
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	first := months[0].(map[string]interface{})
	if first["year"].(float64) != 2024 || first["month"].(float64) != 3 {
		t.Errorf("unexpected first month: %v", first)
	}
}

func TestSummaryHandler_GetYear(t *testing.T) {
	t.Run("returns summary", func(t *testing.T) {
		var gotYear int
		svc := &mockSummaryService{
			yearFn: func(year int) (*services.PeriodSummary, error) {
				gotYear = year
				return &services.PeriodSummary{
					Period:         period.Year(year),
					Budget:         &models.Budget{Name: "Household"},
					Rows:           []services.SummaryRow{},
					ActualTotal:    decimal.RequireFromString("600.00"),
					EstimatedTotal: decimal.RequireFromString("1200.00"),
					Severity:       "success",
				}, nil
			},
		}
		r := setupSummaryRouter(NewSummaryHandler(svc))

		rec := doRequest(r, "GET", "/summary/2024", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotYear != 2024 {
			t.Errorf("expected 2024, got %d", gotYear)
		}
		body := parseJSON(t, rec)
		if body["actual_total"] != "600" || body["severity"] != "success" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("null budget is still 200", func(t *testing.T) {
		r := setupSummaryRouter(NewSummaryHandler(&mockSummaryService{}))

		rec := doRequest(r, "GET", "/summary/1999", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["budget"] != nil {
			t.Error("expected null budget")
		}
	})

	for _, year := range []string{"abc", "0", "10000"} {
		t.Run("returns 400 on year "+year, func(t *testing.T) {
			r := setupSummaryRouter(NewSummaryHandler(&mockSummaryService{}))

			rec := doRequest(r, "GET", "/summary/"+year, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}
}

func TestSummaryHandler_GetMonth(t *testing.T) {
	t.Run("passes month", func(t *testing.T) {
		var gotMonth time.Month
		svc := &mockSummaryService{
			monthFn: func(year int, month time.Month) (*services.PeriodSummary, error) {
				gotMonth = month
				r, _ := period.Month(year, month)
				return &services.PeriodSummary{Period: r}, nil
			},
		}
		r := setupSummaryRouter(NewSummaryHandler(svc))

		rec := doRequest(r, "GET", "/summary/2024/12", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonth != time.December {
			t.Errorf("expected December, got %v", gotMonth)
		}
		p := parseJSON(t, rec)["period"].(map[string]interface{})
		if p["end_date"] != "2024-12-31T00:00:00Z" {
			t.Errorf("unexpected end date %v", p["end_date"])
		}
	})

	for _, month := range []string{"0", "13", "may"} {
		t.Run("returns 400 on month "+month, func(t *testing.T) {
			r := setupSummaryRouter(NewSummaryHandler(&mockSummaryService{}))

			rec := doRequest(r, "GET", "/summary/2024/"+month, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}
