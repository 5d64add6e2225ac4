// Package menuimport reads menu items from spreadsheet uploads.
package menuimport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/core/ports"
)

// Column order of an import sheet. The first row is a header and is skipped.
const (
	colName = iota
	colCategory
	colPrice
	colDescription
	colMeatType
	colSpiceLevel
)

// ParseXLSX reads menu items from the first sheet of an xlsx workbook. Blank
// rows are skipped; a row with an unreadable price fails the whole file.
func ParseXLSX(r io.Reader) ([]ports.MenuItemInput, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.BadRequest("File is not a valid xlsx workbook")
	}
	defer xl.Close()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.BadRequest("Workbook has no sheets")
	}
	rows, err := xl.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var items []ports.MenuItemInput
	for i, row := range rows {
		if i == 0 || blank(row) {
			continue
		}
		item, err := parseRow(row)
		if err != nil {
			return nil, domain.BadRequest(fmt.Sprintf("Row %d: %s", i+1, err.Error()))
		}
		items = append(items, item)
	}
	return items, nil
}

func parseRow(row []string) (ports.MenuItemInput, error) {
	in := ports.MenuItemInput{
		Name:        cell(row, colName),
		Category:    cell(row, colCategory),
		Description: optional(row, colDescription),
		MeatType:    optional(row, colMeatType),
		SpiceLevel:  optional(row, colSpiceLevel),
	}
	if raw := cell(row, colPrice); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return in, fmt.Errorf("price %q is not a whole number", raw)
		}
		in.Price = &price
	}
	return in, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func optional(row []string, i int) *string {
	v := cell(row, i)
	if v == "" {
		return nil
	}
	return &v
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
