package supplier

import (
	"context"

	"github.com/yuditriaji/chefstock/internal/view"
	"go.uber.org/zap"
)

type Page struct {
	*view.Page[[]Supplier]
	svc    *Service
	Filter Filter
}

func NewPage(svc *Service, log *zap.Logger) *Page {
	return &Page{
		Page: view.NewPage("suppliers", svc.Suppliers, log),
		svc:  svc,
	}
}

func (p *Page) Visible() []Supplier {
	return Apply(p.Snapshot().Data, p.Filter)
}

// ActiveCount counts active suppliers in the whole list, ignoring filters.
func (p *Page) ActiveCount() int {
	n := 0
	for _, s := range p.Snapshot().Data {
		if s.Status == StatusActive {
			n++
		}
	}
	return n
}

func (p *Page) Find(id string) (Supplier, bool) {
	for _, s := range p.Snapshot().Data {
		if s.ID == id {
			return s, true
		}
	}
	return Supplier{}, false
}

func (p *Page) Save(ctx context.Context, s Supplier) error {
	if err := ValidateSupplier(s); err != nil {
		return err
	}
	return p.Mutate(ctx, func(ctx context.Context) error {
		_, err := p.svc.Save(ctx, s)
		return err
	})
}

func (p *Page) Delete(ctx context.Context, id string) error {
	return p.Mutate(ctx, func(ctx context.Context) error {
		return p.svc.Delete(ctx, id)
	})
}
