package supplier

import "strings"

// Filter is the supplier page's search box and status dropdown. Status is
// "all", "active" or "inactive"; empty means all.
type Filter struct {
	Search string
	Status string
}

func (f Filter) Match(s Supplier) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.ContactPerson), q) &&
			!strings.Contains(strings.ToLower(s.Category), q) {
			return false
		}
	}
	st := strings.ToLower(strings.TrimSpace(f.Status))
	if st != "" && st != "all" && st != strings.ToLower(string(s.Status)) {
		return false
	}
	return true
}

// Apply returns the matching suppliers in a new slice.
func Apply(suppliers []Supplier, f Filter) []Supplier {
	out := make([]Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}
