package reports

import (
	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/pkg/wire"
)

// WireLowStockItem is the trimmed item shape embedded in the dashboard
// aggregate; unlike the inventory endpoints it uses camelCase.
type WireLowStockItem struct {
	ID            wire.Value `json:"id"`
	Name          string     `json:"name"`
	SKU           string     `json:"sku"`
	Quantity      wire.Value `json:"quantity"`
	MinStockLevel wire.Value `json:"minStockLevel"`
	Unit          string     `json:"unit"`
	Price         wire.Value `json:"price"`
	Category      string     `json:"category"`
}

type WireDashboard struct {
	TotalItems          wire.Value         `json:"totalItems"`
	LowStockItems       wire.Value         `json:"lowStockItems"`
	TotalSuppliers      wire.Value         `json:"totalSuppliers"`
	TotalInventoryValue wire.Value         `json:"totalInventoryValue"`
	RecentOrdersCount   wire.Value         `json:"recentOrdersCount,omitempty"`
	LowStockItemsList   []WireLowStockItem `json:"lowStockItemsList"`
}

type DashboardStats struct {
	TotalItems          int
	LowStockItems       int
	TotalSuppliers      int
	TotalInventoryValue decimal.Decimal
	RecentOrdersCount   int
	LowStockItemsList   []inventory.Item
}

// NormalizeDashboard keeps the backend's list order. The list is converted
// through the inventory wire shape so that every item follows the same
// parse rules as the inventory list.
func NormalizeDashboard(w WireDashboard) DashboardStats {
	items := make([]inventory.Item, 0, len(w.LowStockItemsList))
	for _, l := range w.LowStockItemsList {
		items = append(items, inventory.Normalize(inventory.WireItem{
			ID:            l.ID,
			Name:          l.Name,
			SKU:           l.SKU,
			Category:      l.Category,
			Quantity:      l.Quantity,
			Unit:          l.Unit,
			MinStockLevel: l.MinStockLevel,
			Price:         l.Price,
		}))
	}
	return DashboardStats{
		TotalItems:          w.TotalItems.Int(),
		LowStockItems:       w.LowStockItems.Int(),
		TotalSuppliers:      w.TotalSuppliers.Int(),
		TotalInventoryValue: w.TotalInventoryValue.Decimal(),
		RecentOrdersCount:   w.RecentOrdersCount.Int(),
		LowStockItemsList:   items,
	}
}

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

type WireReportSummary struct {
	TotalSales wire.Value `json:"total_sales"`
	TotalItems wire.Value `json:"total_items"`
	OrderCount wire.Value `json:"order_count"`
}

type WireChartPoint struct {
	Label string     `json:"label"`
	Value wire.Value `json:"value"`
}

type WireSalesReport struct {
	Period    string            `json:"period"`
	Summary   WireReportSummary `json:"summary"`
	ChartData []WireChartPoint  `json:"chartData"`
}

type ChartPoint struct {
	Label string
	Value decimal.Decimal
}

type SalesReport struct {
	Period     Period
	TotalSales decimal.Decimal
	TotalItems int
	OrderCount int
	Chart      []ChartPoint
}

func NormalizeSalesReport(w WireSalesReport) SalesReport {
	chart := make([]ChartPoint, 0, len(w.ChartData))
	for _, p := range w.ChartData {
		chart = append(chart, ChartPoint{Label: p.Label, Value: p.Value.Decimal()})
	}
	return SalesReport{
		Period:     Period(w.Period),
		TotalSales: w.Summary.TotalSales.Decimal(),
		TotalItems: w.Summary.TotalItems.Int(),
		OrderCount: w.Summary.OrderCount.Int(),
		Chart:      chart,
	}
}
