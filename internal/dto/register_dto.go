package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenRegisterRequest struct {
	InitialAmount decimal.Decimal `json:"initial_amount" validate:"min=0"`
}

type CloseRegisterRequest struct {
	ClosingAmount decimal.Decimal `json:"closing_amount" validate:"min=0"`
}

type MovementRequest struct {
	Type        string          `json:"type"        validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,min=3"`
}
