package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock is mutated only through the inventory
// manager's stock-adjustment path; it never goes negative.
type Product struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	// Barcode is unique across the catalog. Auto-generated when the product
	// is created without one.
	Barcode string `json:"barcode"`
}
