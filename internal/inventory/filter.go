package inventory

import (
	"sort"
	"strings"
)

type StockStatus string

const (
	StatusAll     StockStatus = "all"
	StatusLow     StockStatus = "low"
	StatusInStock StockStatus = "in-stock"
)

type SortKey string

const (
	SortNone     SortKey = ""
	SortName     SortKey = "name"
	SortQuantity SortKey = "quantity"
	SortPrice    SortKey = "price"
	SortValue    SortKey = "value"
)

// Filter is the set of client-side predicates of the inventory page. The zero
// value matches everything and keeps server order.
type Filter struct {
	Search   string
	Status   StockStatus
	Category string
	Sort     SortKey
	Desc     bool
}

func (f Filter) Match(i Item) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(i.Name), q) && !strings.Contains(strings.ToLower(i.SKU), q) {
			return false
		}
	}
	switch f.Status {
	case StatusLow:
		if !IsLowStock(i) {
			return false
		}
	case StatusInStock:
		if IsLowStock(i) {
			return false
		}
	}
	if c := strings.ToLower(strings.TrimSpace(f.Category)); c != "" && c != "all" {
		if string(i.Category) != c {
			return false
		}
	}
	return true
}

// Apply returns a new slice with the matching items; items is never modified.
func Apply(items []Item, f Filter) []Item {
	out := make([]Item, 0, len(items))
	for _, i := range items {
		if f.Match(i) {
			out = append(out, i)
		}
	}
	if f.Sort != SortNone {
		sort.SliceStable(out, func(a, b int) bool {
			c := compare(out[a], out[b], f.Sort)
			if f.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	return out
}

func compare(a, b Item, key SortKey) int {
	switch key {
	case SortName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortQuantity:
		return a.Quantity - b.Quantity
	case SortPrice:
		return a.Price.Cmp(b.Price)
	case SortValue:
		return Value(a).Cmp(Value(b))
	}
	return 0
}

// LowStock returns the items currently below their minimum level.
func LowStock(items []Item) []Item {
	return Apply(items, Filter{Status: StatusLow})
}
