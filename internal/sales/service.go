package sales

import (
	"context"
	"fmt"

	"github.com/yuditriaji/chefstock/pkg/activitylog"
	"github.com/yuditriaji/chefstock/pkg/apiclient"
)

const entityType = "sale"

// Service covers the sales endpoints. Sales are append-only from the
// client's side: there is no update or delete.
type Service struct {
	api   *apiclient.Client
	audit *activitylog.Logger
}

func NewService(api *apiclient.Client, audit *activitylog.Logger) *Service {
	return &Service{api: api, audit: audit}
}

func (s *Service) List(ctx context.Context) ([]WireSale, error) {
	var sales []WireSale
	if err := s.api.Get(ctx, "sales/", &sales); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (WireSale, error) {
	var created WireSale
	if err := s.api.Post(ctx, "sales/", req, &created); err != nil {
		return WireSale{}, fmt.Errorf("record sale: %w", err)
	}
	s.audit.LogCreate(entityType, created.ID.Text(), req)
	return created, nil
}

func (s *Service) DailySummary(ctx context.Context) (WireSummary, error) {
	var summary WireSummary
	if err := s.api.Get(ctx, "sales/daily_summary/", &summary); err != nil {
		return WireSummary{}, fmt.Errorf("get daily summary: %w", err)
	}
	return summary, nil
}
