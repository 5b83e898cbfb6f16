package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ZTormDev/pos/internal/dto"
	"github.com/ZTormDev/pos/internal/model"
	"github.com/ZTormDev/pos/internal/service"
	"github.com/ZTormDev/pos/internal/storage"
	"github.com/ZTormDev/pos/internal/store"
)

// taxRate matches the production default (16%).
var taxRate = decimal.NewFromFloat(0.16)

func newTestLedger(t *testing.T) *store.Ledger {
	t.Helper()
	l, err := store.Open(context.Background(), storage.NewMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close(context.Background()) })
	return l
}

func seedProduct(t *testing.T, inv service.InventoryService, name, price string, stock int) model.Product {
	t.Helper()
	p, err := inv.Create(context.Background(), dto.CreateProductRequest{
		Name:     name,
		Category: "Test",
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	})
	require.NoError(t, err)
	return *p
}

func openDrawer(t *testing.T, reg service.RegisterService, initial string) *model.CashSession {
	t.Helper()
	sess, err := reg.Open(context.Background(), dto.OpenRegisterRequest{
		InitialAmount: decimal.RequireFromString(initial),
	}, "Juan Perez")
	require.NoError(t, err)
	return sess
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func moneyPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
