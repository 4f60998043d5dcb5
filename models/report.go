package models

import "github.com/shopspring/decimal"

// SalesDay aggregates the orders created on one calendar day
type SalesDay struct {
	Day     string          `json:"day"` // YYYY-MM-DD
	Orders  int             `json:"orders"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesReport represents the response for GET /admin/reports/sales
// Canceled orders are excluded.
type SalesReport struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	Days         []SalesDay      `json:"days"`
	TotalOrders  int             `json:"totalOrders"`
	TotalUnits   int             `json:"totalUnits"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}
