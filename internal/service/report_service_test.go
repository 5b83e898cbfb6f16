package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZTormDev/pos/internal/model"
	"github.com/ZTormDev/pos/internal/service"
	"github.com/ZTormDev/pos/internal/store"
)

// refNow pins every window test to the same instant.
var refNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)

func fixedClock() time.Time { return refNow }

// insertSale writes a sale with an explicit timestamp straight into the
// ledger, bypassing the checkout path so tests control CreatedAt.
func insertSale(t *testing.T, l *store.Ledger, createdAt time.Time, total string, items ...model.SaleItem) model.Sale {
	t.Helper()
	sale := model.Sale{
		ID:            l.NewID(),
		CreatedAt:     createdAt,
		Cashier:       "Juan Perez",
		Items:         items,
		Total:         money(total),
		PaymentMethod: model.PaymentCard,
		AmountPaid:    money(total),
	}
	require.NoError(t, l.Update(func(s *store.State) (store.Change, error) {
		s.Sales = append([]model.Sale{sale}, s.Sales...)
		return store.ChangedSales, nil
	}))
	return sale
}

func lineItem(p model.Product, qty int) model.SaleItem {
	return model.SaleItem{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		UnitPrice: p.Price,
		Quantity:  qty,
		Subtotal:  p.Price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestSalesWindows(t *testing.T) {
	ledger := newTestLedger(t)
	reports := service.NewReportService(ledger, 20, fixedClock)

	insertSale(t, ledger, refNow.Add(-40*24*time.Hour), "40.00")
	thisMonth := insertSale(t, ledger, refNow.Add(-12*24*time.Hour), "30.00")
	thisWeek := insertSale(t, ledger, refNow.Add(-3*24*time.Hour), "20.00")
	today := insertSale(t, ledger, refNow.Add(-2*time.Hour), "10.00")

	got, err := reports.SalesToday(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, today.ID, got[0].ID)

	// Sales live most-recent-first, so the filtered slices do too.
	got, err = reports.SalesThisWeek(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, today.ID, got[0].ID)
	assert.Equal(t, thisWeek.ID, got[1].ID)

	got, err = reports.SalesThisMonth(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, thisMonth.ID, got[2].ID)
}

func TestSalesTodayIsCalendarDayNotLast24h(t *testing.T) {
	ledger := newTestLedger(t)
	reports := service.NewReportService(ledger, 20, fixedClock)

	// 20 hours ago is still within 24h but lands on yesterday.
	insertSale(t, ledger, refNow.Add(-20*time.Hour), "10.00")

	got, err := reports.SalesToday(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTopSelling(t *testing.T) {
	ledger := newTestLedger(t)
	inv := service.NewInventoryService(ledger)
	reports := service.NewReportService(ledger, 20, fixedClock)

	cheap := seedProduct(t, inv, "Chicle", "0.50", 500)
	mid := seedProduct(t, inv, "Soda", "2.00", 500)
	dear := seedProduct(t, inv, "Whisky", "40.00", 500)

	insertSale(t, ledger, refNow, "5.00", lineItem(cheap, 10))
	insertSale(t, ledger, refNow, "20.00", lineItem(mid, 6), lineItem(cheap, 2))
	insertSale(t, ledger, refNow, "240.00", lineItem(dear, 6))

	top, err := reports.TopSelling(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)

	// Chicle leads on quantity (12). Soda and Whisky tie at 6 units, so
	// revenue breaks the tie in Whisky's favor.
	assert.Equal(t, cheap.ID.String(), top[0].ProductID)
	assert.Equal(t, 12, top[0].TotalQuantity)
	assert.Equal(t, dear.ID.String(), top[1].ProductID)
	assert.True(t, top[1].TotalRevenue.Equal(money("240.00")))

	// Ranking is a pure read, repeated calls agree.
	again, err := reports.TopSelling(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, top, again)
}

func TestTopSellingDefaultLimit(t *testing.T) {
	ledger := newTestLedger(t)
	inv := service.NewInventoryService(ledger)
	reports := service.NewReportService(ledger, 20, fixedClock)

	for i := 0; i < 7; i++ {
		p := seedProduct(t, inv, "Item", "1.00", 100)
		insertSale(t, ledger, refNow, "1.00", lineItem(p, i+1))
	}

	top, err := reports.TopSelling(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, top, 5)
}

func TestLowStock(t *testing.T) {
	ledger := newTestLedger(t)
	reports := service.NewReportService(ledger, 20, fixedClock)

	require.NoError(t, ledger.Update(func(s *store.State) (store.Change, error) {
		s.Products = []model.Product{
			{ID: ledger.NewID(), Name: "Plenty", Stock: 80},
			{ID: ledger.NewID(), Name: "Edge", Stock: 20},
			{ID: ledger.NewID(), Name: "Scarce", Stock: 3},
		}
		return store.ChangedProducts, nil
	}))

	low, err := reports.LowStock(context.Background(), -1)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Edge", low[0].Name)
	assert.Equal(t, "Scarce", low[1].Name)

	low, err = reports.LowStock(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Scarce", low[0].Name)
}

func TestTotalRevenueAndSummary(t *testing.T) {
	ledger := newTestLedger(t)
	reports := service.NewReportService(ledger, 20, fixedClock)

	insertSale(t, ledger, refNow.Add(-time.Hour), "10.50")
	insertSale(t, ledger, refNow.Add(-2*24*time.Hour), "4.50")
	insertSale(t, ledger, refNow.Add(-60*24*time.Hour), "100.00")

	revenue, err := reports.TotalRevenue(context.Background())
	require.NoError(t, err)
	assert.True(t, revenue.Equal(money("115.00")), "got %s", revenue)

	summary, err := reports.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Today.Sales)
	assert.True(t, summary.Today.Revenue.Equal(money("10.50")))
	assert.Equal(t, 2, summary.Week.Sales)
	assert.True(t, summary.Week.Revenue.Equal(money("15.00")))
	assert.True(t, summary.TotalRevenue.Equal(money("115.00")))
	assert.Equal(t, 12, summary.Products)
}
