package persistence

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowedOrderColumns guards ORDER BY input against injection. Only
// known column names may be interpolated into the query.
var allowedOrderColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"price":        true,
	"total":        true,
	"order_number": true,
	"rating":       true,
	"sold_at":      true,
	"spent_at":     true,
	"category":     true,
}

// applyPagination applies pagination and ordering from the filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	if !allowedOrderColumns[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}
