package stubapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/pkg/wire"
)

var categoryChoices = map[string]bool{"food": true, "beverage": true, "general": true}

type itemRecord struct {
	ID            int
	Name          string
	SKU           string
	Category      string
	Quantity      int
	Unit          string
	MinStockLevel int
	Supplier      int
	Price         decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type itemResponse struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	Quantity      int     `json:"quantity"`
	Unit          string  `json:"unit"`
	MinStockLevel int     `json:"min_stock_level"`
	Supplier      *int    `json:"supplier"`
	SupplierName  *string `json:"supplier_name,omitempty"`
	Price         string  `json:"price"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type itemInput struct {
	Name          string     `json:"name"`
	SKU           string     `json:"sku"`
	Category      string     `json:"category"`
	Quantity      wire.Value `json:"quantity"`
	Unit          string     `json:"unit"`
	MinStockLevel wire.Value `json:"min_stock_level"`
	Supplier      wire.Value `json:"supplier"`
	Price         wire.Value `json:"price"`
}

// itemView renders a record; callers hold s.mu.
func (s *Server) itemView(it *itemRecord) itemResponse {
	resp := itemResponse{
		ID:            it.ID,
		Name:          it.Name,
		SKU:           it.SKU,
		Category:      it.Category,
		Quantity:      it.Quantity,
		Unit:          it.Unit,
		MinStockLevel: it.MinStockLevel,
		Price:         it.Price.StringFixed(2),
		CreatedAt:     timestamp(it.CreatedAt),
		UpdatedAt:     timestamp(it.UpdatedAt),
	}
	if sup, ok := s.suppliers[it.Supplier]; ok {
		id, name := sup.ID, sup.Name
		resp.Supplier = &id
		resp.SupplierName = &name
	}
	return resp
}

// sortedItems returns records in id order; callers hold s.mu.
func (s *Server) sortedItems() []*itemRecord {
	out := make([]*itemRecord, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// applyItem validates in and copies it onto rec; callers hold s.mu.
func (s *Server) applyItem(rec *itemRecord, in itemInput) fieldErrors {
	errs := fieldErrors{}
	rec.Name = requiredString(in.Name, "name", errs)
	rec.SKU = requiredString(in.SKU, "sku", errs)
	rec.Unit = requiredString(in.Unit, "unit", errs)

	rec.Category = strings.TrimSpace(in.Category)
	if rec.Category == "" {
		rec.Category = "general"
	} else if !categoryChoices[rec.Category] {
		errs.add("category", "\""+rec.Category+"\" is not a valid choice.")
	}

	rec.Quantity = intField(in.Quantity, "quantity", 0, errs)
	rec.MinStockLevel = intField(in.MinStockLevel, "min_stock_level", 0, errs)
	rec.Price = moneyField(in.Price, "price", errs)

	rec.Supplier = 0
	if raw := in.Supplier.Text(); raw != "" {
		id, ok := primaryKey(raw)
		if _, exists := s.suppliers[id]; !ok || !exists {
			errs.add("supplier", invalidPK(raw))
		} else {
			rec.Supplier = id
		}
	}

	for _, other := range s.items {
		if other.ID != rec.ID && strings.EqualFold(other.SKU, rec.SKU) && rec.SKU != "" {
			errs.add("sku", "inventory item with this sku already exists.")
			break
		}
	}
	return errs
}

// listItems supports the optional search and status query parameters.
func (s *Server) listItems(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))
	status := c.DefaultQuery("status", "all")

	s.mu.Lock()
	defer s.mu.Unlock()

	result := []itemResponse{}
	for _, it := range s.sortedItems() {
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) && !strings.Contains(strings.ToLower(it.SKU), search) {
			continue
		}
		switch status {
		case "low":
			if it.Quantity >= it.MinStockLevel {
				continue
			}
		case "in-stock":
			if it.Quantity < it.MinStockLevel {
				continue
			}
		}
		result = append(result, s.itemView(it))
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getItem(c *gin.Context) {
	id, ok := idParam(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	it, exists := s.items[id]
	if !ok || !exists {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, s.itemView(it))
}

func (s *Server) createItem(c *gin.Context) {
	var in itemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &itemRecord{}
	if errs := s.applyItem(rec, in); len(errs) > 0 {
		badRequest(c, errs)
		return
	}
	rec.ID = s.allocID("inventory")
	rec.CreatedAt = s.now()
	rec.UpdatedAt = rec.CreatedAt
	s.items[rec.ID] = rec
	c.JSON(http.StatusCreated, s.itemView(rec))
}

func (s *Server) updateItem(c *gin.Context) {
	id, ok := idParam(c)
	var in itemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.items[id]
	if !ok || !exists {
		notFound(c)
		return
	}
	rec := *existing
	if errs := s.applyItem(&rec, in); len(errs) > 0 {
		badRequest(c, errs)
		return
	}
	rec.UpdatedAt = s.now()
	*existing = rec
	c.JSON(http.StatusOK, s.itemView(existing))
}

// deleteItem cascades to the item's sales.
func (s *Server) deleteItem(c *gin.Context) {
	id, ok := idParam(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !ok || !exists {
		notFound(c)
		return
	}
	delete(s.items, id)
	kept := s.sales[:0]
	for _, sale := range s.sales {
		if sale.Item != id {
			kept = append(kept, sale)
		}
	}
	s.sales = kept
	c.Status(http.StatusNoContent)
}
