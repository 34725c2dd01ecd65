package inventory

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

var templateHeaders = []string{"Name", "SKU", "Category", "Quantity", "Unit", "Min Stock Level", "Price", "Supplier ID"}

// WriteTemplate writes a sample import workbook.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, header := range templateHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	sampleData := [][]interface{}{
		{"Tomatoes", "SKU-001", "food", 25, "kg", 10, 120.50, ""},
		{"Orange Juice", "SKU-002", "beverage", 40, "liters", 15, 85, ""},
		{"Paper Napkins", "SKU-003", "general", 500, "pcs", 200, 0.75, ""},
	}
	for rowIdx, row := range sampleData {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "H", 14)
	return f.Write(w)
}

// ExportXLSX writes items with their derived value and stock status.
func ExportXLSX(w io.Writer, items []Item) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := append(append([]string{}, templateHeaders...), "Value", "Status")
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for r, item := range items {
		status := "OK"
		if IsLowStock(item) {
			status = "Low"
		}
		row := []interface{}{
			item.Name,
			item.SKU,
			string(item.Category),
			item.Quantity,
			item.Unit,
			item.MinStockLevel,
			item.Price.InexactFloat64(),
			item.SupplierID,
			Value(item).InexactFloat64(),
			status,
		}
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	total, _ := excelize.CoordinatesToCellName(len(headers)-1, len(items)+2)
	f.SetCellValue(sheet, total, TotalValue(items).InexactFloat64())

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "J", 14)
	return f.Write(w)
}
