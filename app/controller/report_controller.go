package controller

import (
	"fmt"
	"net/http"
	"time"

	"tienda-admin/repository"
)

const dateLayout = "2006-01-02"

// ReportController handles HTTP requests for sales reports
type ReportController struct {
	repository repository.ReportRepositoryInterface
	now        func() time.Time
}

// NewReportController creates a new ReportController
func NewReportController(repo repository.ReportRepositoryInterface) *ReportController {
	return &ReportController{repository: repo, now: time.Now}
}

// Sales handles GET /admin/reports/sales?from=2024-01-01&to=2024-01-31
// Both dates are inclusive. Without parameters the last 30 days are returned.
// Example response:
// {"from": "2024-01-01", "to": "2024-02-01", "days": [{"day": "2024-01-15", "orders": 3, "units": 7, "revenue": "315000"}],
//  "totalOrders": 3, "totalUnits": 7, "totalRevenue": "315000"}
func (c *ReportController) Sales(w http.ResponseWriter, r *http.Request) {
	logRequest("SalesReport", r)

	from, to, err := c.parseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := c.repository.SalesSummary(r.Context(), from, to)
	if err != nil {
		writeError(w, "SalesReport", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// parseRange returns the half-open interval [from, to+1day)
func (c *ReportController) parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	today := c.now().UTC().Truncate(24 * time.Hour)

	to := today
	if toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q (expected YYYY-MM-DD)", toStr)
		}
		to = t
	}

	from := to.AddDate(0, 0, -29)
	if fromStr != "" {
		f, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q (expected YYYY-MM-DD)", fromStr)
		}
		from = f
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("from (%s) must not be after to (%s)", from.Format(dateLayout), to.Format(dateLayout))
	}
	return from, to.AddDate(0, 0, 1), nil
}
