package inventory

import (
	"context"
	"fmt"
	"net/url"

	"github.com/yuditriaji/chefstock/pkg/activitylog"
	"github.com/yuditriaji/chefstock/pkg/apiclient"
)

const entityType = "inventory"

// Service is the inventory data-access module. It returns wire shapes;
// normalization is the caller's job.
type Service struct {
	api   *apiclient.Client
	audit *activitylog.Logger
}

func NewService(api *apiclient.Client, audit *activitylog.Logger) *Service {
	return &Service{api: api, audit: audit}
}

func itemPath(id string) string {
	return "inventory/" + url.PathEscape(id) + "/"
}

// List returns all inventory items
func (s *Service) List(ctx context.Context) ([]WireItem, error) {
	var items []WireItem
	if err := s.api.Get(ctx, "inventory/", &items); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (WireItem, error) {
	var item WireItem
	if err := s.api.Get(ctx, itemPath(id), &item); err != nil {
		return WireItem{}, fmt.Errorf("get inventory item %s: %w", id, err)
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, payload WireItem) (WireItem, error) {
	var created WireItem
	if err := s.api.Post(ctx, "inventory/", payload, &created); err != nil {
		return WireItem{}, fmt.Errorf("create inventory item: %w", err)
	}
	s.audit.LogCreate(entityType, created.ID.Text(), payload)
	return created, nil
}

// Update fully replaces the item
func (s *Service) Update(ctx context.Context, id string, payload WireItem) (WireItem, error) {
	var updated WireItem
	if err := s.api.Put(ctx, itemPath(id), payload, &updated); err != nil {
		return WireItem{}, fmt.Errorf("update inventory item %s: %w", id, err)
	}
	s.audit.LogUpdate(entityType, id, payload)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, itemPath(id)); err != nil {
		return fmt.Errorf("delete inventory item %s: %w", id, err)
	}
	s.audit.LogDelete(entityType, id)
	return nil
}

// Items lists and normalizes in one step.
func (s *Service) Items(ctx context.Context) ([]Item, error) {
	ws, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(ws), nil
}

// Save creates the item when it has no id and fully replaces it otherwise.
func (s *Service) Save(ctx context.Context, item Item) (Item, error) {
	if err := ValidateItem(item); err != nil {
		return Item{}, err
	}
	var (
		saved WireItem
		err   error
	)
	if item.ID == "" {
		saved, err = s.Create(ctx, ToWire(item))
	} else {
		saved, err = s.Update(ctx, item.ID, ToWire(item))
	}
	if err != nil {
		return Item{}, err
	}
	return Normalize(saved), nil
}

// Restock replaces item with its quantity raised by added.
func (s *Service) Restock(ctx context.Context, item Item, added int) (Item, error) {
	if err := ValidateRestock(added); err != nil {
		return Item{}, err
	}
	item.Quantity += added
	return s.Save(ctx, item)
}
