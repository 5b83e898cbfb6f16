package service

import (
	"context"
	"time"

	"github.com/ZTormDev/pos/internal/apierror"
	"github.com/ZTormDev/pos/internal/dto"
	"github.com/ZTormDev/pos/internal/model"
	"github.com/ZTormDev/pos/internal/store"
)

// RegisterService drives the drawer state machine: Closed ⇄ Open, with at
// most one open session at any time.
type RegisterService interface {
	Open(ctx context.Context, req dto.OpenRegisterRequest, cashier string) (*model.CashSession, error)
	// Close clears the current session and returns its final snapshot,
	// including the counted difference, for the closing receipt.
	Close(ctx context.Context, req dto.CloseRegisterRequest, cashier string) (*model.CashSession, error)
	RecordMovement(ctx context.Context, req dto.MovementRequest, cashier string) (*model.CashMovement, error)
	// Current returns the open session, or nil when the drawer is closed.
	Current(ctx context.Context) (*model.CashSession, error)
	Movements(ctx context.Context) ([]model.CashMovement, error)
}

type registerService struct {
	ledger *store.Ledger
	now    func() time.Time
}

func NewRegisterService(ledger *store.Ledger) RegisterService {
	return &registerService{ledger: ledger, now: time.Now}
}

func (s *registerService) Open(_ context.Context, req dto.OpenRegisterRequest, cashier string) (*model.CashSession, error) {
	if req.InitialAmount.IsNegative() {
		return nil, apierror.Validation("initial amount cannot be negative")
	}

	var opened model.CashSession
	err := s.ledger.Update(func(st *store.State) (store.Change, error) {
		if st.Session != nil {
			return 0, apierror.AlreadyOpen("a register session is already open")
		}

		opened = model.CashSession{
			ID:            s.ledger.NewID(),
			Cashier:       cashier,
			OpenedAt:      s.now(),
			InitialAmount: req.InitialAmount,
			CurrentAmount: req.InitialAmount,
			Status:        model.SessionOpen,
		}
		st.Session = &opened

		// Opening marker: recorded for audit, does not change the balance
		// (the initial amount already encodes it).
		prependMovement(st, model.CashMovement{
			ID:          s.ledger.NewID(),
			SessionID:   opened.ID,
			Type:        model.MovementOpening,
			Amount:      req.InitialAmount,
			Description: "Register opened",
			Cashier:     cashier,
			CreatedAt:   opened.OpenedAt,
		})
		return store.ChangedSession | store.ChangedMovements, nil
	})
	if err != nil {
		return nil, err
	}
	return &opened, nil
}

func (s *registerService) RecordMovement(_ context.Context, req dto.MovementRequest, cashier string) (*model.CashMovement, error) {
	if !req.Amount.IsPositive() {
		return nil, apierror.Validation("movement amount must be greater than zero")
	}
	if req.Type != model.MovementIncome && req.Type != model.MovementExpense {
		return nil, apierror.Validation("movement type must be income or expense")
	}

	var recorded model.CashMovement
	err := s.ledger.Update(func(st *store.State) (store.Change, error) {
		if st.Session == nil {
			return 0, apierror.NoOpenSession("no open register session")
		}

		recorded = model.CashMovement{
			ID:          s.ledger.NewID(),
			SessionID:   st.Session.ID,
			Type:        req.Type,
			Amount:      req.Amount,
			Description: req.Description,
			Cashier:     cashier,
			CreatedAt:   s.now(),
		}
		prependMovement(st, recorded)

		if req.Type == model.MovementIncome {
			st.Session.CurrentAmount = st.Session.CurrentAmount.Add(req.Amount)
		} else {
			st.Session.CurrentAmount = st.Session.CurrentAmount.Sub(req.Amount)
		}
		return store.ChangedSession | store.ChangedMovements, nil
	})
	if err != nil {
		return nil, err
	}
	return &recorded, nil
}

func (s *registerService) Close(_ context.Context, req dto.CloseRegisterRequest, cashier string) (*model.CashSession, error) {
	if req.ClosingAmount.IsNegative() {
		return nil, apierror.Validation("closing amount cannot be negative")
	}

	var closed model.CashSession
	err := s.ledger.Update(func(st *store.State) (store.Change, error) {
		if st.Session == nil {
			return 0, apierror.NoOpenSession("no open register session")
		}

		closedAt := s.now()
		difference := req.ClosingAmount.Sub(st.Session.CurrentAmount)
		closingAmount := req.ClosingAmount

		closed = *st.Session
		closed.Status = model.SessionClosed
		closed.ClosedAt = &closedAt
		closed.ClosingAmount = &closingAmount
		closed.Difference = &difference

		prependMovement(st, model.CashMovement{
			ID:          s.ledger.NewID(),
			SessionID:   closed.ID,
			Type:        model.MovementClosing,
			Amount:      req.ClosingAmount,
			Description: "Register closed",
			Cashier:     cashier,
			CreatedAt:   closedAt,
		})

		// The closed snapshot is returned to the caller only; "current"
		// session state goes back to none.
		st.Session = nil
		return store.ChangedSession | store.ChangedMovements, nil
	})
	if err != nil {
		return nil, err
	}
	return &closed, nil
}

func (s *registerService) Current(_ context.Context) (*model.CashSession, error) {
	return s.ledger.Session(), nil
}

func (s *registerService) Movements(_ context.Context) ([]model.CashMovement, error) {
	return s.ledger.Movements(), nil
}

// prependMovement keeps the movement ledger most-recent-first.
func prependMovement(st *store.State, m model.CashMovement) {
	st.Movements = append([]model.CashMovement{m}, st.Movements...)
}
