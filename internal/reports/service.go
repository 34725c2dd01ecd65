package reports

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yuditriaji/chefstock/pkg/apiclient"
	"github.com/yuditriaji/chefstock/pkg/validate"
)

// Service reads the pre-computed report aggregates. Reports are read-only.
type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// ParsePeriod accepts daily, weekly or monthly in any case.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	}
	return "", &validate.ValidationError{Field: "period", Message: "must be daily, weekly or monthly"}
}

func (s *Service) DashboardStats(ctx context.Context) (WireDashboard, error) {
	var stats WireDashboard
	if err := s.api.Get(ctx, "reports/dashboard-stats/", &stats); err != nil {
		return WireDashboard{}, fmt.Errorf("get dashboard stats: %w", err)
	}
	return stats, nil
}

func (s *Service) SalesReport(ctx context.Context, period Period) (WireSalesReport, error) {
	if _, err := ParsePeriod(string(period)); err != nil {
		return WireSalesReport{}, err
	}
	var report WireSalesReport
	path := "reports/sales-report/?period=" + url.QueryEscape(string(period))
	if err := s.api.Get(ctx, path, &report); err != nil {
		return WireSalesReport{}, fmt.Errorf("get %s sales report: %w", period, err)
	}
	return report, nil
}

func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	w, err := s.DashboardStats(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	return NormalizeDashboard(w), nil
}

func (s *Service) Sales(ctx context.Context, period Period) (SalesReport, error) {
	w, err := s.SalesReport(ctx, period)
	if err != nil {
		return SalesReport{}, err
	}
	return NormalizeSalesReport(w), nil
}
