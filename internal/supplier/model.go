package supplier

import (
	"strings"

	"github.com/yuditriaji/chefstock/pkg/wire"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// ParseStatus is case-insensitive; anything unknown is Active.
func ParseStatus(s string) Status {
	if strings.EqualFold(strings.TrimSpace(s), string(StatusInactive)) {
		return StatusInactive
	}
	return StatusActive
}

// WireSupplier is a supplier as the backend serialises it.
type WireSupplier struct {
	ID            wire.Value `json:"id,omitempty"`
	Name          string     `json:"name"`
	ContactPerson string     `json:"contact_person"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Category      string     `json:"category"`
	Rating        wire.Value `json:"rating"`
	Status        string     `json:"status"`
	Location      string     `json:"location"`
	CreatedAt     string     `json:"created_at,omitempty"`
	UpdatedAt     string     `json:"updated_at,omitempty"`
}

type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Category      string
	Location      string
	Status        Status
	Rating        float64
}

// Normalize maps the wire shape to the view shape. Blank category and
// location stay blank; renderers substitute their own placeholder.
func Normalize(w WireSupplier) Supplier {
	return Supplier{
		ID:            w.ID.Text(),
		Name:          w.Name,
		ContactPerson: w.ContactPerson,
		Email:         w.Email,
		Phone:         w.Phone,
		Category:      w.Category,
		Location:      w.Location,
		Status:        ParseStatus(w.Status),
		Rating:        w.Rating.Float(),
	}
}

func NormalizeAll(ws []WireSupplier) []Supplier {
	out := make([]Supplier, 0, len(ws))
	for _, w := range ws {
		out = append(out, Normalize(w))
	}
	return out
}

// ToWire builds the full-replace payload; the id travels in the URL.
func ToWire(s Supplier) WireSupplier {
	return WireSupplier{
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Category:      s.Category,
		Location:      s.Location,
		Status:        string(ParseStatus(string(s.Status))),
		Rating:        wire.Float(s.Rating),
	}
}
