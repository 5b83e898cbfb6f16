package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZTormDev/pos/internal/model"
	"github.com/ZTormDev/pos/internal/storage"
	"github.com/ZTormDev/pos/internal/store"
)

func openLedger(t *testing.T, st storage.Store) *store.Ledger {
	t.Helper()
	l, err := store.Open(context.Background(), st)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close(context.Background()) })
	return l
}

func TestOpenSeedsEmptyCatalog(t *testing.T) {
	mem := storage.NewMemory()
	l := openLedger(t, mem)

	products := l.Products()
	require.Len(t, products, 12)
	assert.Equal(t, "Coca Cola 600ml", products[0].Name)

	// The seed is written through so a restart finds a catalog blob.
	l.Flush()
	blob, err := mem.Load(context.Background(), storage.KeyProducts)
	require.NoError(t, err)
	var persisted []model.Product
	require.NoError(t, json.Unmarshal(blob, &persisted))
	assert.Len(t, persisted, 12)
}

func TestOpenLoadsExistingState(t *testing.T) {
	mem := storage.NewMemory()

	first := openLedger(t, mem)
	products := first.Products()
	require.NoError(t, first.Update(func(s *store.State) (store.Change, error) {
		s.Products = s.Products[:3]
		return store.ChangedProducts, nil
	}))
	first.Flush()

	second := openLedger(t, mem)
	reloaded := second.Products()
	require.Len(t, reloaded, 3)
	assert.Equal(t, products[0].ID, reloaded[0].ID)
}

func TestUpdateErrorLeavesStateUntouched(t *testing.T) {
	l := openLedger(t, storage.NewMemory())
	before := l.Products()

	boom := errors.New("boom")
	err := l.Update(func(s *store.State) (store.Change, error) {
		s.Products[0].Stock = -999
		s.Products = s.Products[:1]
		s.Session = &model.CashSession{}
		return store.ChangedProducts, boom
	})
	require.ErrorIs(t, err, boom)

	after := l.Products()
	assert.Equal(t, before, after)
	assert.Nil(t, l.Session())
}

func TestUpdatePersistsOnlyDirtyCollections(t *testing.T) {
	mem := storage.NewMemory()
	l := openLedger(t, mem)
	l.Flush()

	require.NoError(t, l.Update(func(s *store.State) (store.Change, error) {
		s.Session = &model.CashSession{
			ID:            l.NewID(),
			Status:        model.SessionOpen,
			InitialAmount: decimal.NewFromInt(100),
			CurrentAmount: decimal.NewFromInt(100),
		}
		return store.ChangedSession, nil
	}))
	l.Flush()

	blob, err := mem.Load(context.Background(), storage.KeySession)
	require.NoError(t, err)
	var sess *model.CashSession
	require.NoError(t, json.Unmarshal(blob, &sess))
	require.NotNil(t, sess)
	assert.Equal(t, model.SessionOpen, sess.Status)

	// Sales were never dirty, so no blob exists yet.
	_, err = mem.Load(context.Background(), storage.KeySales)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCloseFlushesEverything(t *testing.T) {
	mem := storage.NewMemory()
	l, err := store.Open(context.Background(), mem)
	require.NoError(t, err)

	require.NoError(t, l.Close(context.Background()))

	for _, key := range []string{storage.KeyProducts, storage.KeySales, storage.KeySession, storage.KeyMovements} {
		_, err := mem.Load(context.Background(), key)
		assert.NoError(t, err, "key %s should be flushed on close", key)
	}
}

func TestGenerateBarcodeIsUnique(t *testing.T) {
	s := &store.State{}
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := store.GenerateBarcode(s)
		assert.Len(t, code, 13)
		assert.Equal(t, "750", code[:3])
		assert.False(t, seen[code])
		seen[code] = true
		s.Products = append(s.Products, model.Product{Barcode: code})
	}
}
