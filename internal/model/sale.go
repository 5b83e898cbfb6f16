package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the register.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// SaleItem is a frozen snapshot of a product at sale time. Later catalog
// edits or deletions never alter it.
type SaleItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Sale is an immutable record of a completed transaction.
// Invariants: Total = Subtotal + Tax; for cash payments AmountPaid >= Total
// and Change = AmountPaid - Total; for card payments Change is zero.
type Sale struct {
	ID            uuid.UUID       `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	Cashier       string          `json:"cashier"`
	Items         []SaleItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Change        decimal.Decimal `json:"change"`
	// SessionID attributes the sale to the register session that was open
	// when it completed. Nil for card sales made while the drawer was closed.
	SessionID *uuid.UUID `json:"cash_session_id"`
}
