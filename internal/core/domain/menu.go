package domain

import (
	"bytes"

	"github.com/goccy/go-json"
)

// MenuItem is a single dish. Price is in the smallest currency unit.
type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       int64   `json:"price"`
	Description *string `json:"description"`
	MeatType    *string `json:"meat_type"`
	SpiceLevel  *string `json:"spice_level"`
}

// CategoryGroup holds the items of one category in display order.
type CategoryGroup struct {
	Category string
	Items    []MenuItem
}

// Menu is the public menu grouped by category. Group order is the order in
// which categories were first seen in the sorted store read.
type Menu []CategoryGroup

// MarshalJSON encodes the menu as an object keyed by category, keeping group
// order. A plain map would lose it.
func (m Menu) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Category)
		if err != nil {
			return nil, err
		}
		items := g.Items
		if items == nil {
			items = []MenuItem{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Group returns the items of category, or nil when the menu has none.
func (m Menu) Group(category string) []MenuItem {
	for _, g := range m {
		if g.Category == category {
			return g.Items
		}
	}
	return nil
}
