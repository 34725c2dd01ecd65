package supplier

import (
	"context"
	"fmt"
	"net/url"

	"github.com/yuditriaji/chefstock/pkg/activitylog"
	"github.com/yuditriaji/chefstock/pkg/apiclient"
)

const entityType = "supplier"

type Service struct {
	api   *apiclient.Client
	audit *activitylog.Logger
}

func NewService(api *apiclient.Client, audit *activitylog.Logger) *Service {
	return &Service{api: api, audit: audit}
}

func supplierPath(id string) string {
	return "suppliers/" + url.PathEscape(id) + "/"
}

func (s *Service) List(ctx context.Context) ([]WireSupplier, error) {
	var suppliers []WireSupplier
	if err := s.api.Get(ctx, "suppliers/", &suppliers); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *Service) Get(ctx context.Context, id string) (WireSupplier, error) {
	var sup WireSupplier
	if err := s.api.Get(ctx, supplierPath(id), &sup); err != nil {
		return WireSupplier{}, fmt.Errorf("get supplier %s: %w", id, err)
	}
	return sup, nil
}

func (s *Service) Create(ctx context.Context, payload WireSupplier) (WireSupplier, error) {
	var created WireSupplier
	if err := s.api.Post(ctx, "suppliers/", payload, &created); err != nil {
		return WireSupplier{}, fmt.Errorf("create supplier: %w", err)
	}
	s.audit.LogCreate(entityType, created.ID.Text(), payload)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, payload WireSupplier) (WireSupplier, error) {
	var updated WireSupplier
	if err := s.api.Put(ctx, supplierPath(id), payload, &updated); err != nil {
		return WireSupplier{}, fmt.Errorf("update supplier %s: %w", id, err)
	}
	s.audit.LogUpdate(entityType, id, payload)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, supplierPath(id)); err != nil {
		return fmt.Errorf("delete supplier %s: %w", id, err)
	}
	s.audit.LogDelete(entityType, id)
	return nil
}

func (s *Service) Suppliers(ctx context.Context) ([]Supplier, error) {
	ws, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(ws), nil
}

// Save creates when the supplier has no id and fully replaces it otherwise.
func (s *Service) Save(ctx context.Context, sup Supplier) (Supplier, error) {
	if err := ValidateSupplier(sup); err != nil {
		return Supplier{}, err
	}
	var (
		saved WireSupplier
		err   error
	)
	if sup.ID == "" {
		saved, err = s.Create(ctx, ToWire(sup))
	} else {
		saved, err = s.Update(ctx, sup.ID, ToWire(sup))
	}
	if err != nil {
		return Supplier{}, err
	}
	return Normalize(saved), nil
}
