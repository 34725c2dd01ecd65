package sales

import (
	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/pkg/validate"
	"github.com/yuditriaji/chefstock/pkg/wire"
)

// TotalPrice is quantity × unit price at two-decimal precision.
func TotalPrice(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

// NewSale builds the record-sale request for qty units of item. The quantity
// must be at least 1 and no more than what is in stock.
func NewSale(item inventory.Item, qty int) (CreateRequest, error) {
	var errs validate.Errors
	if item.ID == "" {
		errs.Add("inventory_item", "is required")
	}
	switch {
	case qty < 1:
		errs.Add("quantity", "must be at least 1")
	case qty > item.Quantity:
		errs.Add("quantity", "exceeds the stock on hand")
	}
	if err := errs.Err(); err != nil {
		return CreateRequest{}, err
	}
	return CreateRequest{
		InventoryItem: wire.ID(item.ID),
		Quantity:      qty,
		TotalPrice:    wire.Money(TotalPrice(item.Price, qty)),
	}, nil
}
