package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/internal/sales"
	"github.com/yuditriaji/chefstock/pkg/validate"
)

func (a *app) loadSales(ctx context.Context) (*sales.Page, error) {
	page := sales.NewPage(a.sales, a.inventory, a.log)
	if err := page.Refetch(ctx); err != nil {
		return nil, err
	}
	return page, nil
}

func (a *app) salesList(ctx context.Context, args []string) error {
	if err := a.flags("sales list").Parse(args); err != nil {
		return err
	}
	page, err := a.loadSales(ctx)
	if err != nil {
		return err
	}
	defer page.Close()

	list := page.Snapshot().Data.Sales
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No sales recorded.")
		return nil
	}
	t := newTable(a.out, "ID", "ITEM", "CATEGORY", "QTY", "TOTAL", "SOLD")
	for _, s := range list {
		t.row(s.ID, orNA(s.ItemName()), string(s.Category), strconv.Itoa(s.Quantity), money(s.TotalPrice), date(s.DateSold))
	}
	return t.flush()
}

func (a *app) salesRecord(ctx context.Context, args []string) error {
	fs := a.flags("sales record")
	itemID := fs.String("item", "", "inventory item id")
	qty := fs.Int("qty", 1, "quantity sold")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !validate.NotEmpty(*itemID) {
		return &validate.ValidationError{Field: "inventory_item", Message: "is required"}
	}
	page, err := a.loadSales(ctx)
	if err != nil {
		return err
	}
	defer page.Close()

	var item inventory.Item
	for _, i := range page.Snapshot().Data.Inventory {
		if i.ID == *itemID {
			item = i
		}
	}
	if err := page.Record(ctx, *itemID, *qty); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Recorded sale of %d %s %s for %s\n",
		*qty, item.Unit, item.Name, money(sales.TotalPrice(item.Price, *qty)))
	return nil
}

func (a *app) salesSummary(ctx context.Context, args []string) error {
	if err := a.flags("sales summary").Parse(args); err != nil {
		return err
	}
	summary, err := a.sales.DailySummary(ctx)
	if err != nil {
		return err
	}
	s := sales.NormalizeSummary(summary)
	t := newTable(a.out, "TODAY", "")
	t.row("Food items sold", strconv.Itoa(s.Food))
	t.row("Beverages sold", strconv.Itoa(s.Beverage))
	t.row("Revenue", money(s.TotalRevenue))
	return t.flush()
}
