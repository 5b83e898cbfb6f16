package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ZTormDev/pos/internal/apierror"
	"github.com/ZTormDev/pos/internal/dto"
	"github.com/ZTormDev/pos/internal/model"
	"github.com/ZTormDev/pos/internal/store"
)

// InventoryService manages the product catalog. AdjustStock is the only path
// by which stock changes; the sale coordinator goes through the same helper.
type InventoryService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}

type inventoryService struct {
	ledger *store.Ledger
}

func NewInventoryService(ledger *store.Ledger) InventoryService {
	return &inventoryService{ledger: ledger}
}

func (s *inventoryService) Create(_ context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apierror.Validation("product name is required")
	}
	if req.Price.IsNegative() {
		return nil, apierror.Validation("product price cannot be negative")
	}
	if req.Stock < 0 {
		return nil, apierror.Validation("product stock cannot be negative")
	}

	var created model.Product
	err := s.ledger.Update(func(st *store.State) (store.Change, error) {
		barcode := strings.TrimSpace(req.Barcode)
		if barcode == "" {
			barcode = store.GenerateBarcode(st)
		} else if barcodeTaken(st, barcode, uuid.Nil) {
			return 0, apierror.Validation("barcode %s is already in use", barcode)
		}

		created = model.Product{
			ID:       s.ledger.NewID(),
			Name:     name,
			Category: req.Category,
			Price:    req.Price,
			Stock:    req.Stock,
			Barcode:  barcode,
		}
		st.Products = append(st.Products, created)
		return store.ChangedProducts, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *inventoryService) Update(_ context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*model.Product, error) {
	var updated model.Product
	err := s.ledger.Update(func(st *store.State) (store.Change, error) {
		idx := st.FindProduct(id)
		if idx < 0 {
			return 0, apierror.NotFound("product %s not found", id)
		}
		p := &st.Products[idx]

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return 0, apierror.Validation("product name is required")
			}
			p.Name = name
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Price != nil {
			if req.Price.IsNegative() {
				return 0, apierror.Validation("product price cannot be negative")
			}
			p.Price = *req.Price
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				return 0, apierror.Validation("product stock cannot be negative")
			}
			p.Stock = *req.Stock
		}
		if req.Barcode != nil {
			barcode := strings.TrimSpace(*req.Barcode)
			if barcode == "" {
				return 0, apierror.Validation("barcode cannot be empty")
			}
			if barcodeTaken(st, barcode, id) {
				return 0, apierror.Validation("barcode %s is already in use", barcode)
			}
			p.Barcode = barcode
		}

		updated = *p
		return store.ChangedProducts, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a product from the catalog. No cascade: historical sales
// keep their line-item snapshots regardless of catalog state.
func (s *inventoryService) Delete(_ context.Context, id uuid.UUID) error {
	return s.ledger.Update(func(st *store.State) (store.Change, error) {
		idx := st.FindProduct(id)
		if idx < 0 {
			return 0, apierror.NotFound("product %s not found", id)
		}
		st.Products = append(st.Products[:idx], st.Products[idx+1:]...)
		return store.ChangedProducts, nil
	})
}

func (s *inventoryService) AdjustStock(_ context.Context, id uuid.UUID, delta int) (*model.Product, error) {
	var adjusted model.Product
	err := s.ledger.Update(func(st *store.State) (store.Change, error) {
		p, err := applyStockDelta(st, id, delta)
		if err != nil {
			return 0, err
		}
		adjusted = *p
		return store.ChangedProducts, nil
	})
	if err != nil {
		return nil, err
	}
	return &adjusted, nil
}

func (s *inventoryService) GetByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	var found *model.Product
	s.ledger.View(func(st *store.State) {
		if idx := st.FindProduct(id); idx >= 0 {
			p := st.Products[idx]
			found = &p
		}
	})
	if found == nil {
		return nil, apierror.NotFound("product %s not found", id)
	}
	return found, nil
}

func (s *inventoryService) GetByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	var found *model.Product
	s.ledger.View(func(st *store.State) {
		for i := range st.Products {
			if st.Products[i].Barcode == barcode {
				p := st.Products[i]
				found = &p
				return
			}
		}
	})
	if found == nil {
		return nil, apierror.NotFound("no product with barcode %s", barcode)
	}
	return found, nil
}

func (s *inventoryService) List(_ context.Context) ([]model.Product, error) {
	return s.ledger.Products(), nil
}

// applyStockDelta mutates a product's stock on the working state, rejecting
// any result below zero. Shared with the sale coordinator so every stock
// change goes through the same guard.
func applyStockDelta(st *store.State, id uuid.UUID, delta int) (*model.Product, error) {
	idx := st.FindProduct(id)
	if idx < 0 {
		return nil, apierror.NotFound("product %s not found", id)
	}
	p := &st.Products[idx]
	next := p.Stock + delta
	if next < 0 {
		return nil, apierror.InsufficientStock("insufficient stock for %q: have %d, need %d", p.Name, p.Stock, -delta)
	}
	p.Stock = next
	return p, nil
}

func barcodeTaken(st *store.State, barcode string, except uuid.UUID) bool {
	for i := range st.Products {
		if st.Products[i].Barcode == barcode && st.Products[i].ID != except {
			return true
		}
	}
	return false
}
