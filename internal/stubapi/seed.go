package stubapi

import "github.com/shopspring/decimal"

// SeedDemo loads a small restaurant pantry so the stub is usable out of the
// box. It is a no-op once any supplier or item exists.
func (s *Server) SeedDemo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) > 0 || len(s.suppliers) > 0 {
		return
	}

	now := s.now()
	suppliers := []supplierRecord{
		{Name: "Green Valley Farms", ContactPerson: "Asha Rai", Email: "asha@greenvalley.test", Phone: "9800000001", Category: "Produce", Rating: 4.5, Status: "Active", Location: "Kathmandu"},
		{Name: "Himalayan Beverages", ContactPerson: "Bikash Thapa", Email: "orders@himbev.test", Phone: "9800000002", Category: "Drinks", Rating: 4, Status: "Active", Location: "Lalitpur"},
		{Name: "City Paper Co", ContactPerson: "Mina Shah", Email: "mina@citypaper.test", Phone: "9800000003", Status: "Inactive"},
	}
	for i := range suppliers {
		rec := suppliers[i]
		rec.ID = s.allocID("supplier")
		rec.CreatedAt, rec.UpdatedAt = now, now
		s.suppliers[rec.ID] = &rec
	}

	items := []itemRecord{
		{Name: "Tomatoes", SKU: "FD-001", Category: "food", Quantity: 5, Unit: "kg", MinStockLevel: 10, Supplier: 1, Price: decimal.RequireFromString("120.50")},
		{Name: "Basmati Rice", SKU: "FD-002", Category: "food", Quantity: 80, Unit: "kg", MinStockLevel: 25, Supplier: 1, Price: decimal.RequireFromString("180.00")},
		{Name: "Orange Juice", SKU: "BV-001", Category: "beverage", Quantity: 12, Unit: "liters", MinStockLevel: 12, Supplier: 2, Price: decimal.RequireFromString("85.00")},
		{Name: "Mineral Water", SKU: "BV-002", Category: "beverage", Quantity: 240, Unit: "bottles", MinStockLevel: 48, Supplier: 2, Price: decimal.RequireFromString("25.00")},
		{Name: "Paper Napkins", SKU: "GN-001", Category: "general", Quantity: 150, Unit: "pcs", MinStockLevel: 200, Price: decimal.RequireFromString("0.75")},
	}
	for i := range items {
		rec := items[i]
		rec.ID = s.allocID("inventory")
		rec.CreatedAt, rec.UpdatedAt = now, now
		s.items[rec.ID] = &rec
	}
}
