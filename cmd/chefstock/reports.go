package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/internal/reports"
)

func (a *app) reportsDashboard(ctx context.Context, args []string) error {
	if err := a.flags("reports dashboard").Parse(args); err != nil {
		return err
	}
	page := reports.NewDashboardPage(a.reports, a.log)
	defer page.Close()
	if err := page.Refetch(ctx); err != nil {
		return err
	}
	stats := page.Snapshot().Data

	t := newTable(a.out, "DASHBOARD", "")
	t.row("Total items", strconv.Itoa(stats.TotalItems))
	t.row("Low stock items", strconv.Itoa(stats.LowStockItems))
	t.row("Suppliers", strconv.Itoa(stats.TotalSuppliers))
	t.row("Inventory value", money(stats.TotalInventoryValue))
	t.row("Orders this week", strconv.Itoa(stats.RecentOrdersCount))
	if err := t.flush(); err != nil {
		return err
	}
	if len(stats.LowStockItemsList) > 0 {
		fmt.Fprintln(a.out)
		return a.lowStockTable(stats.LowStockItemsList)
	}
	return nil
}

func (a *app) reportsLowStock(ctx context.Context, args []string) error {
	fs := a.flags("reports low-stock")
	restockID := fs.String("restock", "", "item id to restock")
	added := fs.Int("add", 0, "quantity to add when restocking")
	if err := fs.Parse(args); err != nil {
		return err
	}
	page := reports.NewLowStockPage(a.reports, a.inventory, a.log)
	defer page.Close()
	if err := page.Refetch(ctx); err != nil {
		return err
	}
	if *restockID != "" {
		if err := page.Restock(ctx, *restockID, *added); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Restocked item %s by %d\n\n", *restockID, *added)
	}

	items := page.Snapshot().Data
	if len(items) == 0 {
		fmt.Fprintln(a.out, "All items are sufficiently stocked.")
		return nil
	}
	return a.lowStockTable(items)
}

func (a *app) lowStockTable(items []inventory.Item) error {
	t := newTable(a.out, "ID", "NAME", "SKU", "QTY", "MIN", "UNIT", "SHORTFALL")
	for _, i := range items {
		t.row(i.ID, i.Name, i.SKU, strconv.Itoa(i.Quantity), strconv.Itoa(i.MinStockLevel), i.Unit,
			strconv.Itoa(i.MinStockLevel-i.Quantity))
	}
	return t.flush()
}

func (a *app) reportsSales(ctx context.Context, args []string) error {
	fs := a.flags("reports sales")
	periodFlag := fs.String("period", string(reports.PeriodWeekly), "daily, weekly or monthly")
	out := fs.String("out", "", "also write the report to this .xlsx file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	period, err := reports.ParsePeriod(*periodFlag)
	if err != nil {
		return err
	}
	page := reports.NewSalesReportPage(a.reports, period, a.log)
	defer page.Close()
	if err := page.Refetch(ctx); err != nil {
		return err
	}
	r := page.Snapshot().Data

	fmt.Fprintf(a.out, "Sales report (%s)\n\n", page.Period())
	t := newTable(a.out, "SUMMARY", "")
	t.row("Total sales", money(r.TotalSales))
	t.row("Items sold", strconv.Itoa(r.TotalItems))
	t.row("Orders", strconv.Itoa(r.OrderCount))
	if err := t.flush(); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	chart := newTable(a.out, "PERIOD", "SALES")
	for _, p := range r.Chart {
		chart.row(p.Label, money(p.Value))
	}
	if err := chart.flush(); err != nil {
		return err
	}

	if *out != "" {
		if err := writeFile(*out, func(f *os.File) error { return reports.ExportSalesReport(f, r) }); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "\nWrote %s\n", *out)
	}
	return nil
}
