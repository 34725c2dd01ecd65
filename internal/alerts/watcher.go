package alerts

import (
	"context"
	"time"

	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/internal/reports"
	"go.uber.org/zap"
)

// Watcher polls the dashboard aggregate and reports items that have dropped
// below their minimum stock level.
type Watcher struct {
	reports  *reports.Service
	interval time.Duration
	log      *zap.Logger

	// OnAlert, when set, is called for every item that became low since the
	// previous run.
	OnAlert func(inventory.Item)

	low map[string]int
}

func NewWatcher(svc *reports.Service, interval time.Duration, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		reports:  svc,
		interval: interval,
		log:      log.Named("alerts"),
		low:      make(map[string]int),
	}
}

// Start runs the watcher until ctx is cancelled: once immediately and then on
// every tick. The returned channel is closed when the loop exits.
func (w *Watcher) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.Run(ctx)
		for {
			select {
			case <-ctx.Done():
				w.log.Info("low-stock watcher stopped")
				return
			case <-ticker.C:
				w.Run(ctx)
			}
		}
	}()
	w.log.Info("low-stock watcher started", zap.Duration("interval", w.interval))
	return done
}

// Run does one poll and returns the items that newly went low. Failures are
// logged and retried on the next tick.
func (w *Watcher) Run(ctx context.Context) []inventory.Item {
	stats, err := w.reports.Dashboard(ctx)
	if err != nil {
		w.log.Error("failed to fetch dashboard stats", zap.Error(err))
		return nil
	}

	current := make(map[string]int)
	var fresh []inventory.Item
	for _, item := range inventory.LowStock(stats.LowStockItemsList) {
		current[item.ID] = item.Quantity
		if _, seen := w.low[item.ID]; seen {
			continue
		}
		fresh = append(fresh, item)
		w.log.Warn("low stock",
			zap.String("id", item.ID),
			zap.String("name", item.Name),
			zap.String("sku", item.SKU),
			zap.Int("quantity", item.Quantity),
			zap.Int("min_stock_level", item.MinStockLevel),
			zap.String("unit", item.Unit))
		if w.OnAlert != nil {
			w.OnAlert(item)
		}
	}
	for id := range w.low {
		if _, still := current[id]; !still {
			w.log.Info("stock recovered", zap.String("id", id))
		}
	}
	w.low = current
	return fresh
}
