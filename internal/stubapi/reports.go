package stubapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type lowStockItem struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Quantity      int     `json:"quantity"`
	MinStockLevel int     `json:"minStockLevel"`
	Unit          string  `json:"unit"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
}

// dashboardStats counts an item as low stock when quantity <= min level.
func (s *Server) dashboardStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := decimal.Zero
	lowList := []lowStockItem{}
	for _, it := range s.sortedItems() {
		value = value.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		if it.Quantity <= it.MinStockLevel {
			lowList = append(lowList, lowStockItem{
				ID:            it.ID,
				Name:          it.Name,
				SKU:           it.SKU,
				Quantity:      it.Quantity,
				MinStockLevel: it.MinStockLevel,
				Unit:          it.Unit,
				Price:         it.Price.InexactFloat64(),
				Category:      it.Category,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalItems":          len(s.items),
		"lowStockItems":       len(lowList),
		"totalSuppliers":      len(s.suppliers),
		"totalInventoryValue": value.InexactFloat64(),
		"recentOrdersCount":   len(s.sales),
		"lowStockItemsList":   lowList,
	})
}

type bucket struct {
	label      string
	start, end time.Time
}

// reportBuckets returns the chart windows, oldest first: the last 7 days,
// the last 4 weeks or the last 6 months.
func reportBuckets(period string, now time.Time) ([]bucket, bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var buckets []bucket
	switch period {
	case "daily":
		for i := 6; i >= 0; i-- {
			start := day.AddDate(0, 0, -i)
			buckets = append(buckets, bucket{label: start.Format("Mon 02"), start: start, end: start.AddDate(0, 0, 1)})
		}
	case "weekly":
		for i := 3; i >= 0; i-- {
			end := day.AddDate(0, 0, 1-7*i)
			start := end.AddDate(0, 0, -7)
			buckets = append(buckets, bucket{label: "Week of " + start.Format("Jan 02"), start: start, end: end})
		}
	case "monthly":
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		for i := 5; i >= 0; i-- {
			start := month.AddDate(0, -i, 0)
			buckets = append(buckets, bucket{label: start.Format("Jan 2006"), start: start, end: start.AddDate(0, 1, 0)})
		}
	default:
		return nil, false
	}
	return buckets, true
}

func (s *Server) salesReport(c *gin.Context) {
	period := c.DefaultQuery("period", "daily")
	buckets, ok := reportBuckets(period, s.now())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Invalid period %q. Use daily, weekly or monthly.", period)})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	totalSales := decimal.Zero
	totalItems, orderCount := 0, 0
	chart := make([]gin.H, 0, len(buckets))
	for _, b := range buckets {
		sum := decimal.Zero
		for _, sale := range s.sales {
			if sale.DateSold.Before(b.start) || !sale.DateSold.Before(b.end) {
				continue
			}
			sum = sum.Add(sale.TotalPrice)
			totalItems += sale.Quantity
			orderCount++
		}
		totalSales = totalSales.Add(sum)
		chart = append(chart, gin.H{"label": b.label, "value": sum.InexactFloat64()})
	}

	c.JSON(http.StatusOK, gin.H{
		"period": period,
		"summary": gin.H{
			"total_sales": totalSales.InexactFloat64(),
			"total_items": totalItems,
			"order_count": orderCount,
		},
		"chartData": chart,
	})
}
