package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ZTormDev/pos/internal/dto"
	"github.com/ZTormDev/pos/internal/model"
	"github.com/ZTormDev/pos/internal/store"
)

// ReportService derives read-only aggregations from the ledger. It never
// mutates state. Calendar boundaries use the system-local timezone.
type ReportService interface {
	SalesToday(ctx context.Context) ([]model.Sale, error)
	SalesThisWeek(ctx context.Context) ([]model.Sale, error)
	SalesThisMonth(ctx context.Context) ([]model.Sale, error)
	TopSelling(ctx context.Context, limit int) ([]dto.ProductSales, error)
	LowStock(ctx context.Context, threshold int) ([]model.Product, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
}

type reportService struct {
	ledger            *store.Ledger
	lowStockThreshold int
	now               func() time.Time
}

// NewReportService builds the aggregation engine. now is injectable so tests
// can pin the reference instant; pass nil for the wall clock.
func NewReportService(ledger *store.Ledger, lowStockThreshold int, now func() time.Time) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{ledger: ledger, lowStockThreshold: lowStockThreshold, now: now}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

func (s *reportService) filterSales(keep func(time.Time) bool) []model.Sale {
	var out []model.Sale
	s.ledger.View(func(st *store.State) {
		for _, sale := range st.Sales {
			if keep(sale.CreatedAt) {
				out = append(out, sale)
			}
		}
	})
	return out
}

func (s *reportService) SalesToday(_ context.Context) ([]model.Sale, error) {
	ref := s.now()
	return s.filterSales(func(t time.Time) bool { return sameDay(t, ref) }), nil
}

// SalesThisWeek uses a rolling 7-day window, not a calendar week.
func (s *reportService) SalesThisWeek(_ context.Context) ([]model.Sale, error) {
	cutoff := s.now().Add(-7 * 24 * time.Hour)
	return s.filterSales(func(t time.Time) bool { return !t.Before(cutoff) }), nil
}

func (s *reportService) SalesThisMonth(_ context.Context) ([]model.Sale, error) {
	ry, rm, _ := s.now().Local().Date()
	return s.filterSales(func(t time.Time) bool {
		y, m, _ := t.Local().Date()
		return y == ry && m == rm
	}), nil
}

// TopSelling groups all historical line items by product, ordered by total
// quantity sold descending. Ties break by revenue descending, then product id
// ascending, so repeated calls yield identical output.
func (s *reportService) TopSelling(_ context.Context, limit int) ([]dto.ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}

	grouped := make(map[string]*dto.ProductSales)
	s.ledger.View(func(st *store.State) {
		for _, sale := range st.Sales {
			for _, item := range sale.Items {
				key := item.ProductID.String()
				agg, ok := grouped[key]
				if !ok {
					agg = &dto.ProductSales{
						ProductID:    key,
						Name:         item.Name,
						Category:     item.Category,
						TotalRevenue: decimal.Zero,
					}
					grouped[key] = agg
				}
				agg.TotalQuantity += item.Quantity
				agg.TotalRevenue = agg.TotalRevenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
			}
		}
	})

	out := make([]dto.ProductSales, 0, len(grouped))
	for _, agg := range grouped {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		if cmp := out[i].TotalRevenue.Cmp(out[j].TotalRevenue); cmp != 0 {
			return cmp > 0
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LowStock returns catalog products with stock at or below the threshold, in
// catalog order. A negative threshold falls back to the configured default.
func (s *reportService) LowStock(_ context.Context, threshold int) ([]model.Product, error) {
	if threshold < 0 {
		threshold = s.lowStockThreshold
	}
	var out []model.Product
	s.ledger.View(func(st *store.State) {
		for _, p := range st.Products {
			if p.Stock <= threshold {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

func (s *reportService) TotalRevenue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	s.ledger.View(func(st *store.State) {
		for _, sale := range st.Sales {
			total = total.Add(sale.Total)
		}
	})
	return total, nil
}

func (s *reportService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	today, _ := s.SalesToday(ctx)
	week, _ := s.SalesThisWeek(ctx)
	month, _ := s.SalesThisMonth(ctx)
	revenue, _ := s.TotalRevenue(ctx)
	low, _ := s.LowStock(ctx, s.lowStockThreshold)

	var products int
	s.ledger.View(func(st *store.State) { products = len(st.Products) })

	return &dto.SummaryResponse{
		Today:        periodStats(today),
		Week:         periodStats(week),
		Month:        periodStats(month),
		TotalRevenue: revenue,
		Products:     products,
		LowStock:     len(low),
	}, nil
}

func periodStats(sales []model.Sale) dto.PeriodStats {
	revenue := decimal.Zero
	for _, s := range sales {
		revenue = revenue.Add(s.Total)
	}
	return dto.PeriodStats{Sales: len(sales), Revenue: revenue}
}
