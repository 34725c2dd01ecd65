package inventory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ImportResult struct {
	TotalRows    int      `json:"total_rows"`
	CreatedCount int      `json:"created_count"`
	UpdatedCount int      `json:"updated_count"`
	FailedCount  int      `json:"failed_count"`
	Errors       []string `json:"errors"`
}

// ImportRow is one parsed spreadsheet row; Line is the 1-based sheet row.
type ImportRow struct {
	Line int
	Item Item
}

var columnAliases = map[string][]string{
	"name":     {"name", "item name", "item", "product name"},
	"sku":      {"sku", "code", "item code"},
	"category": {"category", "type"},
	"quantity": {"quantity", "qty", "stock"},
	"unit":     {"unit", "uom"},
	"min":      {"min stock level", "min_stock_level", "min stock", "reorder level"},
	"price":    {"price", "unit price", "price per unit"},
	"supplier": {"supplier id", "supplier_id", "supplier"},
}

// ParseFile reads an .xlsx or .csv inventory sheet; name selects the format.
func ParseFile(name string, r io.Reader) ([]ImportRow, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return parseExcel(r)
	case ".csv":
		return parseCSV(r)
	}
	return nil, fmt.Errorf("unsupported file format %q: use .xlsx or .csv", filepath.Ext(name))
}

func parseExcel(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

func parseCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return parseRows(records)
}

func parseRows(rows [][]string) ([]ImportRow, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file must have header row and at least one data row")
	}

	colMap := make(map[string]int)
	for i, cell := range rows[0] {
		colMap[strings.ToLower(strings.TrimSpace(cell))] = i
	}
	index := make(map[string]int)
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx, ok := colMap[alias]; ok {
				index[field] = idx
				break
			}
		}
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("header row has no name column")
	}

	cell := func(row []string, field string) string {
		idx, ok := index[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var result []ImportRow
	for n, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		item := NewItem()
		item.Name = cell(row, "name")
		item.SKU = cell(row, "sku")
		if c := cell(row, "category"); c != "" {
			item.Category = ParseCategory(c)
		}
		if u := cell(row, "unit"); u != "" {
			item.Unit = u
		}
		item.Quantity = atoi(cell(row, "quantity"))
		item.MinStockLevel = atoi(cell(row, "min"))
		if p, err := decimal.NewFromString(cell(row, "price")); err == nil {
			item.Price = p
		}
		item.SupplierID = cell(row, "supplier")

		if item.Name == "" && item.SKU == "" {
			continue
		}
		result = append(result, ImportRow{Line: n + 2, Item: item})
	}
	return result, nil
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// Import upserts rows by SKU against the current snapshot: a known SKU is
// fully replaced under its existing id, anything else is created. Row
// failures are collected and do not stop the import; the list is refetched
// once at the end.
func (p *Page) Import(ctx context.Context, rows []ImportRow) (ImportResult, error) {
	result := ImportResult{TotalRows: len(rows), Errors: []string{}}

	bySKU := make(map[string]Item)
	for _, existing := range p.Snapshot().Data {
		bySKU[strings.ToLower(existing.SKU)] = existing
	}

	err := p.Mutate(ctx, func(ctx context.Context) error {
		for _, row := range rows {
			item := row.Item
			existing, found := bySKU[strings.ToLower(item.SKU)]
			if found {
				item.ID = existing.ID
			}
			saved, err := p.svc.Save(ctx, item)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: failed to save %s - %v", row.Line, item.Name, err))
				result.FailedCount++
				continue
			}
			if found {
				result.UpdatedCount++
			} else {
				result.CreatedCount++
				bySKU[strings.ToLower(saved.SKU)] = saved
			}
		}
		return nil
	})
	return result, err
}
