package stubapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/pkg/wire"
)

type saleRecord struct {
	ID         int
	Item       int
	Quantity   int
	TotalPrice decimal.Decimal
	DateSold   time.Time
}

type saleResponse struct {
	ID            int           `json:"id"`
	InventoryItem int           `json:"inventory_item"`
	ItemDetails   *itemResponse `json:"item_details"`
	Quantity      int           `json:"quantity"`
	TotalPrice    string        `json:"total_price"`
	Category      string        `json:"category"`
	DateSold      string        `json:"date_sold"`
}

type saleInput struct {
	InventoryItem wire.Value `json:"inventory_item"`
	Quantity      wire.Value `json:"quantity"`
	TotalPrice    wire.Value `json:"total_price"`
}

// saleView renders a sale with the item as it is now; callers hold s.mu.
func (s *Server) saleView(sale *saleRecord) saleResponse {
	resp := saleResponse{
		ID:            sale.ID,
		InventoryItem: sale.Item,
		Quantity:      sale.Quantity,
		TotalPrice:    sale.TotalPrice.StringFixed(2),
		DateSold:      timestamp(sale.DateSold),
	}
	if it, ok := s.items[sale.Item]; ok {
		details := s.itemView(it)
		resp.ItemDetails = &details
		resp.Category = it.Category
	}
	return resp
}

func (s *Server) listSales(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]saleResponse, 0, len(s.sales))
	for _, sale := range s.sales {
		result = append(result, s.saleView(sale))
	}
	c.JSON(http.StatusOK, result)
}

// createSale records the sale and deducts its quantity from the item. Stock
// is not checked here; the client refuses to oversell.
func (s *Server) createSale(c *gin.Context) {
	var in saleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	errs := fieldErrors{}
	rec := &saleRecord{}
	raw := in.InventoryItem.Text()
	if raw == "" {
		errs.add("inventory_item", required)
	} else if id, ok := primaryKey(raw); !ok || s.items[id] == nil {
		errs.add("inventory_item", invalidPK(raw))
	} else {
		rec.Item = id
	}
	if in.Quantity.IsNull() {
		errs.add("quantity", required)
	} else {
		rec.Quantity = intField(in.Quantity, "quantity", 0, errs)
	}
	rec.TotalPrice = moneyField(in.TotalPrice, "total_price", errs)
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	item := s.items[rec.Item]
	item.Quantity -= rec.Quantity
	item.UpdatedAt = s.now()

	rec.ID = s.allocID("sale")
	rec.DateSold = s.now()
	s.sales = append(s.sales, rec)
	c.JSON(http.StatusCreated, s.saleView(rec))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dailySummary aggregates today's sales by item category.
func (s *Server) dailySummary(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	food, beverage := 0, 0
	revenue := decimal.Zero
	for _, sale := range s.sales {
		if !sameDay(sale.DateSold, today) {
			continue
		}
		revenue = revenue.Add(sale.TotalPrice)
		if it, ok := s.items[sale.Item]; ok {
			switch it.Category {
			case "food":
				food += sale.Quantity
			case "beverage":
				beverage += sale.Quantity
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"food":          food,
		"beverage":      beverage,
		"total_revenue": revenue.InexactFloat64(),
	})
}
