package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/pkg/validate"
)

// NewItem returns the blank add-item form.
func NewItem() Item {
	return Item{Unit: "kg", Category: CategoryGeneral, Price: decimal.Zero}
}

// ValidateItem runs the required-field checks done before submission.
func ValidateItem(i Item) error {
	var errs validate.Errors
	if !validate.NotEmpty(i.Name) {
		errs.Add("name", "is required")
	}
	if !validate.NotEmpty(i.SKU) {
		errs.Add("sku", "is required")
	}
	if !validate.NotEmpty(i.Unit) {
		errs.Add("unit", "is required")
	}
	if !validate.OneOf(string(i.Category), "food", "beverage", "general") {
		errs.Add("category", "must be food, beverage or general")
	}
	if i.Quantity < 0 {
		errs.Add("quantity", "must not be negative")
	}
	if i.MinStockLevel < 0 {
		errs.Add("min_stock_level", "must not be negative")
	}
	if i.Price.IsNegative() {
		errs.Add("price", "must not be negative")
	}
	return errs.Err()
}

func ValidateRestock(added int) error {
	if added < 1 {
		return &validate.ValidationError{Field: "quantity", Message: "must add at least 1"}
	}
	return nil
}
