package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement types. Opening and closing movements are historical markers only;
// income and expense movements mutate the session's running balance.
const (
	MovementOpening = "opening"
	MovementClosing = "closing"
	MovementIncome  = "income"
	MovementExpense = "expense"
)

// CashMovement is an append-only event in the drawer ledger. Movements are
// never edited or deleted. Cash-sale credits are NOT recorded here — they are
// attributed through the sale's session id to avoid double-counting.
type CashMovement struct {
	ID          uuid.UUID       `json:"id"`
	SessionID   uuid.UUID       `json:"cash_session_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Cashier     string          `json:"cashier"`
	CreatedAt   time.Time       `json:"created_at"`
}
