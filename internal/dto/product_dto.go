package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name     string          `json:"name"     validate:"required,min=2,max=120"`
	Category string          `json:"category" validate:"required"`
	Price    decimal.Decimal `json:"price"    validate:"min=0"`
	Stock    int             `json:"stock"    validate:"min=0"`
	// Barcode is optional; a unique one is generated when omitted.
	Barcode string `json:"barcode" validate:"omitempty,min=8,max=18"`
}

type UpdateProductRequest struct {
	Name     *string          `json:"name"     validate:"omitempty,min=2,max=120"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int             `json:"stock"`
	Barcode  *string          `json:"barcode"  validate:"omitempty,min=8,max=18"`
}

// AdjustStockRequest applies a signed delta: positive restocks, negative
// removes units.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}
