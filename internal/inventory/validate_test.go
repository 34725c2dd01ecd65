package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/pkg/validate"
)

func TestNewItem_Defaults(t *testing.T) {
	i := inventory.NewItem()
	if i.Unit != "kg" || i.Category != inventory.CategoryGeneral {
		t.Fatalf("defaults = %+v", i)
	}
}

func TestValidateItem(t *testing.T) {
	ok := inventory.NewItem()
	ok.Name, ok.SKU = "Flour", "FL-1"
	if err := inventory.ValidateItem(ok); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}

	bad := inventory.Item{Category: "snacks", Quantity: -1, Price: decimal.NewFromInt(-2)}
	err := inventory.ValidateItem(bad)
	var errs validate.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("want validate.Errors, got %T %v", err, err)
	}
	for _, field := range []string{"name", "sku", "unit", "category", "quantity", "price"} {
		if !errs.Has(field) {
			t.Errorf("missing error for %s in %v", field, err)
		}
	}
}

func TestValidateRestock(t *testing.T) {
	if err := inventory.ValidateRestock(1); err != nil {
		t.Fatal(err)
	}
	var verr *validate.ValidationError
	if err := inventory.ValidateRestock(0); !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}
