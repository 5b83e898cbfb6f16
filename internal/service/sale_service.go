package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ZTormDev/pos/internal/apierror"
	"github.com/ZTormDev/pos/internal/dto"
	"github.com/ZTormDev/pos/internal/model"
	"github.com/ZTormDev/pos/internal/store"
)

// SaleService is the transaction coordinator: it validates a proposed sale
// against inventory and drawer state, computes totals, and applies the
// multi-entity write (stock decrement + sale append + drawer credit) as one
// unit. On any rejection the ledger is left completely unchanged.
type SaleService interface {
	Create(ctx context.Context, req dto.CreateSaleRequest, cashier string) (*model.Sale, error)
	// List returns sales most recent first (head-insert order).
	List(ctx context.Context) ([]model.Sale, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	ledger  *store.Ledger
	taxRate decimal.Decimal
	now     func() time.Time
}

func NewSaleService(ledger *store.Ledger, taxRate decimal.Decimal) SaleService {
	return &saleService{ledger: ledger, taxRate: taxRate, now: time.Now}
}

func (s *saleService) Create(_ context.Context, req dto.CreateSaleRequest, cashier string) (*model.Sale, error) {
	if len(req.Items) == 0 {
		return nil, apierror.Validation("cart is empty")
	}
	if req.PaymentMethod != model.PaymentCash && req.PaymentMethod != model.PaymentCard {
		return nil, apierror.Validation("payment method must be cash or card")
	}

	type cartLine struct {
		id  uuid.UUID
		qty int
	}
	lines := make([]cartLine, 0, len(req.Items))
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation("invalid product id %q", item.ProductID)
		}
		if item.Quantity <= 0 {
			return nil, apierror.Validation("item quantity must be greater than zero")
		}
		lines = append(lines, cartLine{id: pid, qty: item.Quantity})
	}

	var created model.Sale
	err := s.ledger.Update(func(st *store.State) (store.Change, error) {
		// Stock check + decrement against the working state. A failure on
		// any line discards the whole working copy, so partially decremented
		// stock never reaches the committed ledger.
		items := make([]model.SaleItem, 0, len(lines))
		subtotal := decimal.Zero
		for _, line := range lines {
			p, err := applyStockDelta(st, line.id, -line.qty)
			if err != nil {
				return 0, err
			}
			lineSubtotal := p.Price.Mul(decimal.NewFromInt(int64(line.qty)))
			items = append(items, model.SaleItem{
				ProductID: p.ID,
				Name:      p.Name,
				Category:  p.Category,
				UnitPrice: p.Price,
				Quantity:  line.qty,
				Subtotal:  lineSubtotal,
			})
			subtotal = subtotal.Add(lineSubtotal)
		}

		if req.PaymentMethod == model.PaymentCash && st.Session == nil {
			return 0, apierror.NoOpenSession("cash sales require an open register session")
		}

		tax := subtotal.Mul(s.taxRate).Round(2)
		total := subtotal.Add(tax)

		var paid, change decimal.Decimal
		switch req.PaymentMethod {
		case model.PaymentCard:
			// Card charges the exact total; any supplied amount is ignored.
			paid = total
			change = decimal.Zero
		case model.PaymentCash:
			if req.AmountPaid == nil {
				return 0, apierror.Validation("amount paid is required for cash payments")
			}
			paid = *req.AmountPaid
			if paid.LessThan(total) {
				return 0, apierror.InsufficientPayment("amount paid %s is less than total %s", paid.StringFixed(2), total.StringFixed(2))
			}
			change = paid.Sub(total)
		}

		var sessionID *uuid.UUID
		if st.Session != nil {
			id := st.Session.ID
			sessionID = &id
		}

		created = model.Sale{
			ID:            s.ledger.NewID(),
			CreatedAt:     s.now(),
			Cashier:       cashier,
			Items:         items,
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         total,
			PaymentMethod: req.PaymentMethod,
			AmountPaid:    paid,
			Change:        change,
			SessionID:     sessionID,
		}

		// Head-insert keeps the sales ledger reverse-chronological without
		// ever re-sorting.
		st.Sales = append([]model.Sale{created}, st.Sales...)

		dirty := store.ChangedProducts | store.ChangedSales
		if req.PaymentMethod == model.PaymentCash {
			// Credited directly; not recorded as a CashMovement so movement
			// listings don't double-count sales.
			st.Session.CurrentAmount = st.Session.CurrentAmount.Add(total)
			dirty |= store.ChangedSession
		}
		return dirty, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *saleService) List(_ context.Context) ([]model.Sale, error) {
	return s.ledger.Sales(), nil
}

func (s *saleService) Get(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	var found *model.Sale
	s.ledger.View(func(st *store.State) {
		for i := range st.Sales {
			if st.Sales[i].ID == id {
				sale := st.Sales[i]
				found = &sale
				return
			}
		}
	})
	if found == nil {
		return nil, apierror.NotFound("sale %s not found", id)
	}
	return found, nil
}
