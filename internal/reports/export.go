package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

// ExportSalesReport writes the report summary followed by its chart buckets.
func ExportSalesReport(w io.Writer, r SalesReport) error {
	f := excelize.NewFile()
	defer f.Close()

	period := string(r.Period)
	if period != "" {
		period = strings.ToUpper(period[:1]) + period[1:]
	}
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s Sales Report", period))
	f.SetCellValue(sheet, "A3", "Total Sales")
	f.SetCellValue(sheet, "B3", r.TotalSales.InexactFloat64())
	f.SetCellValue(sheet, "A4", "Items Sold")
	f.SetCellValue(sheet, "B4", r.TotalItems)
	f.SetCellValue(sheet, "A5", "Orders")
	f.SetCellValue(sheet, "B5", r.OrderCount)

	f.SetCellValue(sheet, "A7", "Label")
	f.SetCellValue(sheet, "B7", "Sales")
	for i, p := range r.Chart {
		row := i + 8
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Value.InexactFloat64())
	}

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 14)
	return f.Write(w)
}
