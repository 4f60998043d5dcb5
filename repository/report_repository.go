package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tienda-admin/models"
)

// ReportRepository aggregates order data for the dashboard
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(conn *sql.DB) *ReportRepository {
	return &ReportRepository{db: conn}
}

// Ensure ReportRepository implements ReportRepositoryInterface
var _ ReportRepositoryInterface = (*ReportRepository)(nil)

// SalesSummary returns per-day order counts, units and revenue in [from, to), skipping canceled orders
func (r *ReportRepository) SalesSummary(ctx context.Context, from, to time.Time) (*models.SalesReport, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day,
		       COUNT(*), COALESCE(SUM(total_quantity), 0), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND status <> $3
		GROUP BY 1
		ORDER BY 1 ASC
	`, from, to, models.OrderStatusCanceled)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales summary: %w", err)
	}
	defer rows.Close()

	var days []models.SalesDay
	for rows.Next() {
		var d models.SalesDay
		if err := rows.Scan(&d.Day, &d.Orders, &d.Units, &d.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan sales day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return buildSalesReport(from, to, days), nil
}

func buildSalesReport(from, to time.Time, days []models.SalesDay) *models.SalesReport {
	report := &models.SalesReport{
		From:         from.Format("2006-01-02"),
		To:           to.Format("2006-01-02"),
		Days:         []models.SalesDay{},
		TotalRevenue: decimal.Zero,
	}
	for _, d := range days {
		report.Days = append(report.Days, d)
		report.TotalOrders += d.Orders
		report.TotalUnits += d.Units
		report.TotalRevenue = report.TotalRevenue.Add(d.Revenue)
	}
	return report
}
