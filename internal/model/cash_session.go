package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session states.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// CashSession is one bounded drawer period. At most one session is open at
// any time. CurrentAmount tracks the running balance:
//
//	initial + Σ(income) − Σ(expense) + Σ(cash-sale totals)
//
// ClosingAmount and Difference are set on close; Difference is the counted
// closing amount minus the running balance at close time.
type CashSession struct {
	ID            uuid.UUID        `json:"id"`
	Cashier       string           `json:"cashier"`
	OpenedAt      time.Time        `json:"opened_at"`
	InitialAmount decimal.Decimal  `json:"initial_amount"`
	CurrentAmount decimal.Decimal  `json:"current_amount"`
	Status        string           `json:"status"`
	ClosedAt      *time.Time       `json:"closed_at,omitempty"`
	ClosingAmount *decimal.Decimal `json:"closing_amount,omitempty"`
	Difference    *decimal.Decimal `json:"difference,omitempty"`
}
