package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CartItem struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	Items         []CartItem `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string     `json:"payment_method" validate:"required,oneof=cash card"`
	// AmountPaid is required for cash payments and ignored for card payments
	// (card always pays the exact total).
	AmountPaid *decimal.Decimal `json:"amount_paid"`
}
