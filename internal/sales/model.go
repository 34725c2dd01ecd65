package sales

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/pkg/wire"
)

// WireSale is a recorded sale. ItemDetails is the backend's denormalized
// snapshot of the item and may be absent.
type WireSale struct {
	ID            wire.Value          `json:"id,omitempty"`
	InventoryItem wire.Value          `json:"inventory_item"`
	ItemDetails   *inventory.WireItem `json:"item_details,omitempty"`
	Quantity      wire.Value          `json:"quantity"`
	TotalPrice    wire.Value          `json:"total_price"`
	Category      string              `json:"category,omitempty"`
	DateSold      string              `json:"date_sold,omitempty"`
}

type Sale struct {
	ID            string
	InventoryItem string
	ItemDetails   *inventory.Item
	Quantity      int
	TotalPrice    decimal.Decimal
	Category      inventory.Category
	DateSold      time.Time
}

// ItemName is the snapshot name, or "" when the backend sent none.
func (s Sale) ItemName() string {
	if s.ItemDetails == nil {
		return ""
	}
	return s.ItemDetails.Name
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Normalize maps the wire sale to the view sale. An unparsable date is the
// zero time; a missing category falls back to the snapshot's category.
func Normalize(w WireSale) Sale {
	s := Sale{
		ID:            w.ID.Text(),
		InventoryItem: w.InventoryItem.Text(),
		Quantity:      w.Quantity.Int(),
		TotalPrice:    w.TotalPrice.Decimal(),
		DateSold:      parseDate(w.DateSold),
	}
	category := w.Category
	if w.ItemDetails != nil {
		item := inventory.Normalize(*w.ItemDetails)
		s.ItemDetails = &item
		if category == "" {
			category = string(item.Category)
		}
	}
	s.Category = inventory.ParseCategory(category)
	return s
}

func NormalizeAll(ws []WireSale) []Sale {
	out := make([]Sale, 0, len(ws))
	for _, w := range ws {
		out = append(out, Normalize(w))
	}
	return out
}

// WireSummary is today's pre-computed aggregate.
type WireSummary struct {
	Food         wire.Value `json:"food"`
	Beverage     wire.Value `json:"beverage"`
	TotalRevenue wire.Value `json:"total_revenue"`
}

type DailySummary struct {
	Food         int
	Beverage     int
	TotalRevenue decimal.Decimal
}

func NormalizeSummary(w WireSummary) DailySummary {
	return DailySummary{
		Food:         w.Food.Int(),
		Beverage:     w.Beverage.Int(),
		TotalRevenue: w.TotalRevenue.Decimal(),
	}
}

// CreateRequest is the body of POST sales/.
type CreateRequest struct {
	InventoryItem wire.Value `json:"inventory_item"`
	Quantity      int        `json:"quantity"`
	TotalPrice    wire.Value `json:"total_price"`
}
