package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/internal/view"
	"go.uber.org/zap"
)

// Page is the inventory screen: the fetched list, its filters and the
// add/edit/delete/restock intents.
type Page struct {
	*view.Page[[]Item]
	svc    *Service
	Filter Filter
}

func NewPage(svc *Service, log *zap.Logger) *Page {
	return &Page{
		Page: view.NewPage("inventory", svc.Items, log),
		svc:  svc,
	}
}

// Visible is the filtered projection of the current snapshot.
func (p *Page) Visible() []Item {
	return Apply(p.Snapshot().Data, p.Filter)
}

func (p *Page) Find(id string) (Item, bool) {
	for _, i := range p.Snapshot().Data {
		if i.ID == id {
			return i, true
		}
	}
	return Item{}, false
}

// TotalValue sums price × quantity over the visible items.
func (p *Page) TotalValue() decimal.Decimal {
	return TotalValue(p.Visible())
}

// Save validates before any request is made, so a failing form keeps its
// values and nothing is sent.
func (p *Page) Save(ctx context.Context, item Item) error {
	if err := ValidateItem(item); err != nil {
		return err
	}
	return p.Mutate(ctx, func(ctx context.Context) error {
		_, err := p.svc.Save(ctx, item)
		return err
	})
}

// Delete removes the item and refetches. A failing delete (for example an
// item that is already gone) leaves the current list as it was.
func (p *Page) Delete(ctx context.Context, id string) error {
	return p.Mutate(ctx, func(ctx context.Context) error {
		return p.svc.Delete(ctx, id)
	})
}

func (p *Page) Restock(ctx context.Context, id string, added int) error {
	if err := ValidateRestock(added); err != nil {
		return err
	}
	item, ok := p.Find(id)
	if !ok {
		return fmt.Errorf("inventory item %s is not on this page", id)
	}
	return p.Mutate(ctx, func(ctx context.Context) error {
		_, err := p.svc.Restock(ctx, item, added)
		return err
	})
}
