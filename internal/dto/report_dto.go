package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ProductSales aggregates all historical line items for one product.
type ProductSales struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

type PeriodStats struct {
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SummaryResponse backs the dashboard cards.
type SummaryResponse struct {
	Today        PeriodStats     `json:"today"`
	Week         PeriodStats     `json:"week"`
	Month        PeriodStats     `json:"month"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Products     int             `json:"products"`
	LowStock     int             `json:"low_stock"`
}
