package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SizeStock holds the stock count for a single size within a color variant
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Variant is a color-specific stock grouping, broken into per-size entries
type Variant struct {
	Color string      `json:"color"`
	Sizes []SizeStock `json:"sizes"`
}

// VariantList is the ordered set of variants for a product, persisted as JSON
type VariantList []Variant

// Value implements driver.Valuer for JSON column storage
func (v VariantList) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSON column storage
func (v *VariantList) Scan(value interface{}) error {
	if value == nil {
		*v = VariantList{}
		return nil
	}
	var data []byte
	switch raw := value.(type) {
	case []byte:
		data = raw
	case string:
		data = []byte(raw)
	default:
		return fmt.Errorf("unsupported variant column type %T", value)
	}
	if len(data) == 0 {
		*v = VariantList{}
		return nil
	}
	return json.Unmarshal(data, v)
}

// StockSum returns the total stock across all size entries of all variants
func (v VariantList) StockSum() int {
	sum := 0
	for _, variant := range v {
		for _, size := range variant.Sizes {
			sum += size.Stock
		}
	}
	return sum
}

// SizeCount returns the total number of size entries across all variants
func (v VariantList) SizeCount() int {
	count := 0
	for _, variant := range v {
		count += len(variant.Sizes)
	}
	return count
}

// FindSize returns a pointer to the size entry for the given color and size,
// or nil if no such entry exists
func (v VariantList) FindSize(color, size string) *SizeStock {
	for vi := range v {
		if v[vi].Color != color {
			continue
		}
		for si := range v[vi].Sizes {
			if v[vi].Sizes[si].Size == size {
				return &v[vi].Sizes[si]
			}
		}
	}
	return nil
}
