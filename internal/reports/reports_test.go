package reports_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/internal/reports"
	"github.com/yuditriaji/chefstock/internal/sales"
	"github.com/yuditriaji/chefstock/internal/stubapi/stubapitest"
	"github.com/yuditriaji/chefstock/pkg/validate"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNormalizeDashboard(t *testing.T) {
	raw := `{"totalItems":3,"lowStockItems":"2","totalSuppliers":1,"totalInventoryValue":104.5,
		"lowStockItemsList":[{"id":1,"name":"Tomatoes","sku":"SKU-1","quantity":5,"minStockLevel":10,"unit":"kg","price":3.5,"category":"food"}]}`
	var w reports.WireDashboard
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatal(err)
	}
	got := reports.NormalizeDashboard(w)
	if got.TotalItems != 3 || got.LowStockItems != 2 || got.TotalSuppliers != 1 || !got.TotalInventoryValue.Equal(decimal.RequireFromString("104.5")) {
		t.Fatalf("stats = %+v", got)
	}
	if len(got.LowStockItemsList) != 1 {
		t.Fatalf("list = %+v", got.LowStockItemsList)
	}
	item := got.LowStockItemsList[0]
	if item.ID != "1" || item.MinStockLevel != 10 || item.Category != inventory.CategoryFood || !item.Price.Equal(decimal.RequireFromString("3.5")) {
		t.Fatalf("item = %+v", item)
	}
}

func TestParsePeriod(t *testing.T) {
	for _, p := range []string{"daily", "Weekly", " monthly "} {
		if _, err := reports.ParsePeriod(p); err != nil {
			t.Errorf("%q: %v", p, err)
		}
	}
	var verr *validate.ValidationError
	if _, err := reports.ParsePeriod("yearly"); !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func seed(t *testing.T, env *stubapitest.Env) []inventory.Item {
	t.Helper()
	svc := inventory.NewService(env.Client, env.Audit)
	var out []inventory.Item
	for _, i := range []inventory.Item{
		{Name: "Tomatoes", SKU: "SKU-1", Unit: "kg", Quantity: 5, MinStockLevel: 10, Price: decimal.RequireFromString("3.00"), Category: inventory.CategoryFood},
		{Name: "Juice", SKU: "BV-1", Unit: "l", Quantity: 12, MinStockLevel: 12, Price: decimal.RequireFromString("2.00"), Category: inventory.CategoryBeverage},
		{Name: "Rice", SKU: "FD-2", Unit: "kg", Quantity: 50, MinStockLevel: 5, Price: decimal.RequireFromString("1.00"), Category: inventory.CategoryFood},
	} {
		saved, err := svc.Save(context.Background(), i)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, saved)
	}
	return out
}

func TestDashboardPage_LowStockAgreesWithPredicate(t *testing.T) {
	env := stubapitest.New(t)
	seed(t, env)

	core, logs := observer.New(zap.WarnLevel)
	page := reports.NewDashboardPage(reports.NewService(env.Client), zap.New(core))
	if err := page.Refetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	stats := page.Snapshot().Data

	if stats.TotalItems != 3 || !stats.TotalInventoryValue.Equal(decimal.NewFromInt(89)) {
		t.Fatalf("stats = %+v", stats)
	}
	// The backend counts Juice (12 of 12) as low; the client does not.
	if stats.LowStockItems != 1 || len(stats.LowStockItemsList) != 1 || stats.LowStockItemsList[0].Name != "Tomatoes" {
		t.Fatalf("low stock = %d %+v", stats.LowStockItems, stats.LowStockItemsList)
	}
	for _, i := range stats.LowStockItemsList {
		if !inventory.IsLowStock(i) {
			t.Fatalf("%s is not low stock", i.Name)
		}
	}
	if logs.FilterMessage("backend low-stock count disagrees with item list").Len() != 1 {
		t.Fatalf("want one mismatch warning, got %v", logs.All())
	}
}

func TestLowStockPage_Restock(t *testing.T) {
	env := stubapitest.New(t)
	items := seed(t, env)
	inv := inventory.NewService(env.Client, env.Audit)

	page := reports.NewLowStockPage(reports.NewService(env.Client), inv, nil)
	ctx := context.Background()
	if err := page.Refetch(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(page.Snapshot().Data); n != 1 {
		t.Fatalf("want 1 low item, got %d", n)
	}

	if err := page.Restock(ctx, items[0].ID, 20); err != nil {
		t.Fatal(err)
	}
	if n := len(page.Snapshot().Data); n != 0 {
		t.Fatalf("restocked item should leave the list, %d left", n)
	}
	w, err := inv.Get(ctx, items[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if got := inventory.Normalize(w); got.Quantity != 25 || got.SKU != "SKU-1" || got.Unit != "kg" {
		t.Fatalf("restocked item = %+v", got)
	}

	if err := page.Restock(ctx, items[0].ID, 0); err == nil {
		t.Fatal("restock by 0 must fail validation")
	}
}

func TestSalesReportPage(t *testing.T) {
	env := stubapitest.New(t)
	items := seed(t, env)
	ctx := context.Background()

	salesSvc := sales.NewService(env.Client, env.Audit)
	req, err := sales.NewSale(items[2], 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := salesSvc.Create(ctx, req); err != nil {
		t.Fatal(err)
	}

	svc := reports.NewService(env.Client)
	page := reports.NewSalesReportPage(svc, reports.PeriodDaily, nil)
	if err := page.Refetch(ctx); err != nil {
		t.Fatal(err)
	}
	report := page.Snapshot().Data
	if report.Period != reports.PeriodDaily || report.OrderCount != 1 || report.TotalItems != 4 || !report.TotalSales.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("report = %+v", report)
	}
	if len(report.Chart) != 7 {
		t.Fatalf("daily chart has %d buckets", len(report.Chart))
	}

	if err := page.SetPeriod(ctx, reports.PeriodMonthly); err != nil {
		t.Fatal(err)
	}
	if got := page.Snapshot().Data; got.Period != reports.PeriodMonthly || len(got.Chart) != 6 {
		t.Fatalf("monthly report = %+v", got)
	}

	if err := page.SetPeriod(ctx, "hourly"); err == nil {
		t.Fatal("hourly is not a period")
	}
	if _, err := svc.SalesReport(ctx, "hourly"); err == nil {
		t.Fatal("service must reject unknown periods before sending")
	}
}

func TestSalesReportPage_ConcurrentPeriodChanges(t *testing.T) {
	env := stubapitest.New(t)
	svc := reports.NewService(env.Client)
	page := reports.NewSalesReportPage(svc, reports.PeriodDaily, nil)
	ctx := context.Background()

	periods := []reports.Period{reports.PeriodDaily, reports.PeriodWeekly, reports.PeriodMonthly}
	var wg sync.WaitGroup
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func(p reports.Period) {
			defer wg.Done()
			if err := page.SetPeriod(ctx, p); err != nil {
				t.Error(err)
			}
			_ = page.Period()
		}(periods[i%len(periods)])
	}
	wg.Wait()

	if err := page.SetPeriod(ctx, reports.PeriodWeekly); err != nil {
		t.Fatal(err)
	}
	if page.Period() != reports.PeriodWeekly || page.Snapshot().Data.Period != reports.PeriodWeekly {
		t.Fatalf("period = %s, report period = %s", page.Period(), page.Snapshot().Data.Period)
	}
}

func TestExportSalesReport(t *testing.T) {
	r := reports.SalesReport{
		Period:     reports.PeriodWeekly,
		TotalSales: decimal.RequireFromString("120.50"),
		TotalItems: 9,
		OrderCount: 4,
		Chart: []reports.ChartPoint{
			{Label: "Week of Apr 01", Value: decimal.NewFromInt(20)},
			{Label: "Week of Apr 08", Value: decimal.RequireFromString("100.50")},
		},
	}
	var buf bytes.Buffer
	if err := reports.ExportSalesReport(&buf, r); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	title, _ := f.GetCellValue("Sheet1", "A1")
	total, _ := f.GetCellValue("Sheet1", "B3")
	last, _ := f.GetCellValue("Sheet1", "A9")
	if title != "Weekly Sales Report" || total != "120.5" || last != "Week of Apr 08" {
		t.Fatalf("title=%q total=%q last=%q", title, total, last)
	}
}
