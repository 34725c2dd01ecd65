package reports

import (
	"context"
	"fmt"
	"sync"

	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/internal/view"
	"go.uber.org/zap"
)

// DashboardPage shows the aggregate counters and the low-stock table.
type DashboardPage struct {
	*view.Page[DashboardStats]
	log *zap.Logger
}

func NewDashboardPage(svc *Service, log *zap.Logger) *DashboardPage {
	if log == nil {
		log = zap.NewNop()
	}
	p := &DashboardPage{log: log}
	p.Page = view.NewPage("dashboard", func(ctx context.Context) (DashboardStats, error) {
		stats, err := svc.Dashboard(ctx)
		if err != nil {
			return stats, err
		}
		return reconcile(stats, p.log), nil
	}, log)
	return p
}

// reconcile keeps only list items that are low stock by the client's rule
// and derives the counter from that list. The backend counts with <=, so a
// disagreement is logged rather than shown.
func reconcile(stats DashboardStats, log *zap.Logger) DashboardStats {
	reported := stats.LowStockItems
	stats.LowStockItemsList = inventory.LowStock(stats.LowStockItemsList)
	stats.LowStockItems = len(stats.LowStockItemsList)
	if reported != stats.LowStockItems {
		log.Warn("backend low-stock count disagrees with item list",
			zap.Int("reported", reported),
			zap.Int("derived", stats.LowStockItems))
	}
	return stats
}

// LowStockPage lists the items that need restocking and lets the user
// restock them in place.
type LowStockPage struct {
	*view.Page[[]inventory.Item]
	items *inventory.Service
}

func NewLowStockPage(svc *Service, items *inventory.Service, log *zap.Logger) *LowStockPage {
	if log == nil {
		log = zap.NewNop()
	}
	return &LowStockPage{
		Page: view.NewPage("low-stock", func(ctx context.Context) ([]inventory.Item, error) {
			stats, err := svc.Dashboard(ctx)
			if err != nil {
				return nil, err
			}
			return reconcile(stats, log).LowStockItemsList, nil
		}, log),
		items: items,
	}
}

// Restock adds to the item's quantity. The dashboard list carries no
// supplier, so the full item is fetched before it is replaced.
func (p *LowStockPage) Restock(ctx context.Context, id string, added int) error {
	if err := inventory.ValidateRestock(added); err != nil {
		return err
	}
	found := false
	for _, i := range p.Snapshot().Data {
		if i.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("inventory item %s is not on this page", id)
	}
	return p.Mutate(ctx, func(ctx context.Context) error {
		w, err := p.items.Get(ctx, id)
		if err != nil {
			return err
		}
		_, err = p.items.Restock(ctx, inventory.Normalize(w), added)
		return err
	})
}

// SalesReportPage holds one period's report; changing the period refetches.
type SalesReportPage struct {
	*view.Page[SalesReport]

	mu     sync.Mutex
	period Period
}

func NewSalesReportPage(svc *Service, period Period, log *zap.Logger) *SalesReportPage {
	p := &SalesReportPage{period: period}
	p.Page = view.NewPage("sales-report", func(ctx context.Context) (SalesReport, error) {
		return svc.Sales(ctx, p.Period())
	}, log)
	return p
}

func (p *SalesReportPage) Period() Period {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.period
}

func (p *SalesReportPage) SetPeriod(ctx context.Context, period Period) error {
	parsed, err := ParsePeriod(string(period))
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.period = parsed
	p.mu.Unlock()
	return p.Refetch(ctx)
}
