package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/internal/alerts"
	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/internal/reports"
	"github.com/yuditriaji/chefstock/internal/stubapi/stubapitest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWatcher_AlertsOncePerDrop(t *testing.T) {
	env := stubapitest.New(t)
	ctx := context.Background()
	inv := inventory.NewService(env.Client, env.Audit)

	flour, err := inv.Save(ctx, inventory.Item{Name: "Flour", SKU: "FL", Unit: "kg", Quantity: 1, MinStockLevel: 5, Price: decimal.NewFromInt(1), Category: inventory.CategoryFood})
	if err != nil {
		t.Fatal(err)
	}
	// Exactly at the minimum: the backend lists it, the client does not alert.
	if _, err := inv.Save(ctx, inventory.Item{Name: "Salt", SKU: "SA", Unit: "kg", Quantity: 5, MinStockLevel: 5, Price: decimal.NewFromInt(1), Category: inventory.CategoryFood}); err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zap.InfoLevel)
	w := alerts.NewWatcher(reports.NewService(env.Client), time.Hour, zap.New(core))
	var alerted []string
	w.OnAlert = func(i inventory.Item) { alerted = append(alerted, i.Name) }

	if fresh := w.Run(ctx); len(fresh) != 1 || fresh[0].Name != "Flour" {
		t.Fatalf("first run = %+v", fresh)
	}
	if fresh := w.Run(ctx); len(fresh) != 0 {
		t.Fatalf("second run should not repeat alerts, got %+v", fresh)
	}
	if len(alerted) != 1 || logs.FilterMessage("low stock").Len() != 1 {
		t.Fatalf("alerted = %v, logs = %d", alerted, logs.FilterMessage("low stock").Len())
	}

	if _, err := inv.Restock(ctx, flour, 10); err != nil {
		t.Fatal(err)
	}
	w.Run(ctx)
	if logs.FilterMessage("stock recovered").Len() != 1 {
		t.Fatal("want a recovered entry after restock")
	}
}

func TestWatcher_StartStops(t *testing.T) {
	env := stubapitest.New(t)
	w := alerts.NewWatcher(reports.NewService(env.Client), 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := w.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcher_FetchErrorIsLogged(t *testing.T) {
	env := stubapitest.New(t)
	env.HTTP.Close()

	core, logs := observer.New(zap.ErrorLevel)
	w := alerts.NewWatcher(reports.NewService(env.Client), time.Hour, zap.New(core))
	if fresh := w.Run(context.Background()); fresh != nil {
		t.Fatalf("want no alerts, got %+v", fresh)
	}
	if logs.Len() != 1 {
		t.Fatalf("want one error entry, got %d", logs.Len())
	}
}
