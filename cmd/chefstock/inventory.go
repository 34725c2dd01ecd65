package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/pkg/validate"
)

// itemForm binds the add/update flags. Only flags given on the command line
// are applied, so update keeps every field that was not mentioned.
type itemForm struct {
	fs       *flag.FlagSet
	name     *string
	sku      *string
	category *string
	unit     *string
	price    *string
	supplier *string
	quantity *int
	minStock *int
}

func newItemForm(fs *flag.FlagSet) *itemForm {
	return &itemForm{
		fs:       fs,
		name:     fs.String("name", "", "item name"),
		sku:      fs.String("sku", "", "stock keeping unit"),
		category: fs.String("category", "", "food, beverage or general"),
		unit:     fs.String("unit", "", "unit of measure"),
		price:    fs.String("price", "", "price per unit"),
		supplier: fs.String("supplier", "", "supplier id (empty for none)"),
		quantity: fs.Int("qty", 0, "quantity in stock"),
		minStock: fs.Int("min", 0, "minimum stock level"),
	}
}

func (f *itemForm) apply(item *inventory.Item) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			item.Name = *f.name
		case "sku":
			item.SKU = *f.sku
		case "category":
			item.Category = inventory.Category(*f.category)
		case "unit":
			item.Unit = *f.unit
		case "supplier":
			item.SupplierID = *f.supplier
		case "qty":
			item.Quantity = *f.quantity
		case "min":
			item.MinStockLevel = *f.minStock
		case "price":
			p, perr := decimal.NewFromString(*f.price)
			if perr != nil {
				err = &validate.ValidationError{Field: "price", Message: "must be a number"}
				return
			}
			item.Price = p
		}
	})
	return err
}

// loadInventory mounts the inventory page and fetches it once.
func (a *app) loadInventory(ctx context.Context) (*inventory.Page, error) {
	page := inventory.NewPage(a.inventory, a.log)
	if err := page.Refetch(ctx); err != nil {
		return nil, err
	}
	return page, nil
}

func (a *app) inventoryList(ctx context.Context, args []string) error {
	fs := a.flags("inventory list")
	search := fs.String("q", "", "search name or SKU")
	status := fs.String("status", "all", "all, low or in-stock")
	category := fs.String("category", "all", "all, food, beverage or general")
	sortKey := fs.String("sort", "", "name, quantity, price or value")
	desc := fs.Bool("desc", false, "sort descending")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !validate.OneOf(*status, "all", "low", "in-stock") {
		return &validate.ValidationError{Field: "status", Message: "must be all, low or in-stock"}
	}
	if !validate.OneOf(*sortKey, "", "name", "quantity", "price", "value") {
		return &validate.ValidationError{Field: "sort", Message: "must be name, quantity, price or value"}
	}

	page, err := a.loadInventory(ctx)
	if err != nil {
		return err
	}
	defer page.Close()
	page.Filter = inventory.Filter{
		Search:   *search,
		Status:   inventory.StockStatus(strings.ToLower(*status)),
		Category: *category,
		Sort:     inventory.SortKey(strings.ToLower(*sortKey)),
		Desc:     *desc,
	}

	items := page.Visible()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No inventory items found.")
		return nil
	}
	t := newTable(a.out, "ID", "NAME", "SKU", "CATEGORY", "QTY", "UNIT", "MIN", "STOCK", "PRICE", "VALUE", "SUPPLIER", "STATUS")
	for _, i := range items {
		state := "In Stock"
		if inventory.IsLowStock(i) {
			state = "Low Stock"
		}
		t.row(i.ID, i.Name, i.SKU, string(i.Category),
			strconv.Itoa(i.Quantity), i.Unit, strconv.Itoa(i.MinStockLevel),
			strconv.Itoa(inventory.StockPercent(i))+"%",
			money(i.Price), money(inventory.Value(i)), orNA(i.SupplierName), state)
	}
	if err := t.flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\n%d items, total value %s\n", len(items), money(page.TotalValue()))
	return nil
}

func (a *app) inventoryAdd(ctx context.Context, args []string) error {
	fs := a.flags("inventory add")
	form := newItemForm(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	item := inventory.NewItem()
	if err := form.apply(&item); err != nil {
		return err
	}
	if err := inventory.ValidateItem(item); err != nil {
		return err
	}
	page := inventory.NewPage(a.inventory, a.log)
	defer page.Close()
	if err := page.Save(ctx, item); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%s)\n", item.Name, item.SKU)
	return nil
}

func (a *app) inventoryUpdate(ctx context.Context, args []string) error {
	fs := a.flags("inventory update")
	form := newItemForm(fs)
	id, err := parseWithArg(fs, args, "item id")
	if err != nil {
		return err
	}
	page, err := a.loadInventory(ctx)
	if err != nil {
		return err
	}
	defer page.Close()
	item, ok := page.Find(id)
	if !ok {
		return fmt.Errorf("inventory item %s not found", id)
	}
	if err := form.apply(&item); err != nil {
		return err
	}
	if err := page.Save(ctx, item); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s (%s)\n", item.Name, item.SKU)
	return nil
}

func (a *app) inventoryDelete(ctx context.Context, args []string) error {
	fs := a.flags("inventory delete")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	id, err := parseWithArg(fs, args, "item id")
	if err != nil {
		return err
	}
	page, err := a.loadInventory(ctx)
	if err != nil {
		return err
	}
	defer page.Close()

	label := "item " + id
	if item, ok := page.Find(id); ok {
		label = fmt.Sprintf("%s (%s)", item.Name, item.SKU)
	}
	if !*yes && !a.confirm("Delete "+label+"?") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := page.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", label)
	return nil
}

func (a *app) inventoryRestock(ctx context.Context, args []string) error {
	fs := a.flags("inventory restock")
	added := fs.Int("add", 0, "quantity to add")
	id, err := parseWithArg(fs, args, "item id")
	if err != nil {
		return err
	}
	if err := inventory.ValidateRestock(*added); err != nil {
		return err
	}
	page, err := a.loadInventory(ctx)
	if err != nil {
		return err
	}
	defer page.Close()
	if err := page.Restock(ctx, id, *added); err != nil {
		return err
	}
	if item, ok := page.Find(id); ok {
		fmt.Fprintf(a.out, "Restocked %s: now %d %s\n", item.Name, item.Quantity, item.Unit)
	}
	return nil
}

func (a *app) inventoryImport(ctx context.Context, args []string) error {
	fs := a.flags("inventory import")
	path, err := parseWithArg(fs, args, "file")
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := inventory.ParseFile(filepath.Base(path), f)
	if err != nil {
		return err
	}
	page, err := a.loadInventory(ctx)
	if err != nil {
		return err
	}
	defer page.Close()

	result, err := page.Import(ctx, rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Imported %d rows: %d created, %d updated, %d failed\n",
		result.TotalRows, result.CreatedCount, result.UpdatedCount, result.FailedCount)
	for _, msg := range result.Errors {
		fmt.Fprintf(a.out, "  %s\n", msg)
	}
	return nil
}

func (a *app) inventoryExport(ctx context.Context, args []string) error {
	fs := a.flags("inventory export")
	status := fs.String("status", "all", "all, low or in-stock")
	path, err := parseWithArg(fs, args, "file")
	if err != nil {
		return err
	}
	page, err := a.loadInventory(ctx)
	if err != nil {
		return err
	}
	defer page.Close()
	page.Filter.Status = inventory.StockStatus(strings.ToLower(*status))
	items := page.Visible()

	if err := writeFile(path, func(f *os.File) error { return inventory.ExportXLSX(f, items) }); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d items to %s\n", len(items), path)
	return nil
}

func (a *app) inventoryTemplate(_ context.Context, args []string) error {
	fs := a.flags("inventory template")
	path, err := parseWithArg(fs, args, "file")
	if err != nil {
		return err
	}
	if err := writeFile(path, func(f *os.File) error { return inventory.WriteTemplate(f) }); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote import template to %s\n", path)
	return nil
}

// writeFile creates path and removes it again if fill fails.
func writeFile(path string, fill func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
