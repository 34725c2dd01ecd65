package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/pkg/wire"
)

type Category string

const (
	CategoryFood     Category = "food"
	CategoryBeverage Category = "beverage"
	CategoryGeneral  Category = "general"
)

var Categories = []Category{CategoryFood, CategoryBeverage, CategoryGeneral}

// ParseCategory maps any text to a known category, defaulting to general.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryFood, CategoryBeverage, CategoryGeneral:
		return c
	}
	return CategoryGeneral
}

// WireItem is an inventory item as the backend serialises it.
type WireItem struct {
	ID            wire.Value `json:"id,omitempty"`
	Name          string     `json:"name"`
	SKU           string     `json:"sku"`
	Category      string     `json:"category"`
	Quantity      wire.Value `json:"quantity"`
	Unit          string     `json:"unit"`
	MinStockLevel wire.Value `json:"min_stock_level"`
	Supplier      wire.Value `json:"supplier"`
	SupplierName  string     `json:"supplier_name,omitempty"`
	Price         wire.Value `json:"price"`
	CreatedAt     string     `json:"created_at,omitempty"`
	UpdatedAt     string     `json:"updated_at,omitempty"`
}

// Item is the normalized in-memory inventory item.
type Item struct {
	ID            string
	Name          string
	SKU           string
	Quantity      int
	Unit          string
	MinStockLevel int
	SupplierID    string
	SupplierName  string
	Price         decimal.Decimal
	Category      Category
}

// Normalize maps the wire shape to the view shape. It is total and pure:
// numbers that fail to parse become 0, a null supplier becomes "", and an
// unknown category becomes general.
func Normalize(w WireItem) Item {
	return Item{
		ID:            w.ID.Text(),
		Name:          w.Name,
		SKU:           w.SKU,
		Quantity:      w.Quantity.Int(),
		Unit:          w.Unit,
		MinStockLevel: w.MinStockLevel.Int(),
		SupplierID:    w.Supplier.Text(),
		SupplierName:  w.SupplierName,
		Price:         w.Price.Decimal(),
		Category:      ParseCategory(w.Category),
	}
}

func NormalizeAll(ws []WireItem) []Item {
	items := make([]Item, 0, len(ws))
	for _, w := range ws {
		items = append(items, Normalize(w))
	}
	return items
}

// ToWire builds the full-replace payload for create/update. The id is left
// out; it travels in the URL.
func ToWire(i Item) WireItem {
	return WireItem{
		Name:          i.Name,
		SKU:           i.SKU,
		Category:      string(ParseCategory(string(i.Category))),
		Quantity:      wire.Int(i.Quantity),
		Unit:          i.Unit,
		MinStockLevel: wire.Int(i.MinStockLevel),
		Supplier:      wire.ID(i.SupplierID),
		SupplierName:  i.SupplierName,
		Price:         wire.Money(i.Price),
	}
}

// Equal compares every field, treating prices by value.
func (i Item) Equal(o Item) bool {
	return i.ID == o.ID &&
		i.Name == o.Name &&
		i.SKU == o.SKU &&
		i.Quantity == o.Quantity &&
		i.Unit == o.Unit &&
		i.MinStockLevel == o.MinStockLevel &&
		i.SupplierID == o.SupplierID &&
		i.SupplierName == o.SupplierName &&
		i.Price.Equal(o.Price) &&
		i.Category == o.Category
}

// IsLowStock is recomputed from the current snapshot on every call.
func IsLowStock(i Item) bool {
	return i.Quantity < i.MinStockLevel
}

// Value is price × quantity.
func Value(i Item) decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func TotalValue(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, i := range items {
		total = total.Add(Value(i))
	}
	return total
}

// StockPercent is the fill level of the stock bar, capped at 100.
func StockPercent(i Item) int {
	switch {
	case i.Quantity <= 0:
		return 0
	case i.Quantity > 100:
		return 100
	}
	return i.Quantity
}
