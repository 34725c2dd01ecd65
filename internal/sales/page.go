package sales

import (
	"context"
	"fmt"

	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/internal/view"
	"go.uber.org/zap"
)

// Daily is everything the daily-sales screen shows.
type Daily struct {
	Sales     []Sale
	Summary   DailySummary
	Inventory []inventory.Item
}

// Page is the daily-sales screen. It owns its own copy of the inventory
// list for the record-sale item picker.
type Page struct {
	*view.Page[Daily]
	svc   *Service
	items *inventory.Service
}

func NewPage(svc *Service, items *inventory.Service, log *zap.Logger) *Page {
	p := &Page{svc: svc, items: items}
	p.Page = view.NewPage("daily-sales", p.load, log)
	return p
}

func (p *Page) load(ctx context.Context) (Daily, error) {
	ws, err := p.svc.List(ctx)
	if err != nil {
		return Daily{}, err
	}
	summary, err := p.svc.DailySummary(ctx)
	if err != nil {
		return Daily{}, err
	}
	items, err := p.items.Items(ctx)
	if err != nil {
		return Daily{}, err
	}
	return Daily{
		Sales:     NormalizeAll(ws),
		Summary:   NormalizeSummary(summary),
		Inventory: items,
	}, nil
}

// Record sells qty units of the item with the given id, using the price and
// stock from the current snapshot.
func (p *Page) Record(ctx context.Context, itemID string, qty int) error {
	var item inventory.Item
	found := false
	for _, i := range p.Snapshot().Data.Inventory {
		if i.ID == itemID {
			item, found = i, true
			break
		}
	}
	if !found {
		return fmt.Errorf("inventory item %s is not on this page", itemID)
	}
	req, err := NewSale(item, qty)
	if err != nil {
		return err
	}
	return p.Mutate(ctx, func(ctx context.Context) error {
		_, err := p.svc.Create(ctx, req)
		return err
	})
}
