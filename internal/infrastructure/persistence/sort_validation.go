package persistence

import (
	"strings"

	"github.com/servicehub/backend/internal/domain/shared"
)

// SortColumns maps the sort keys a client may send to table columns
type SortColumns map[string]string

// TenantSortColumns are the keys accepted by the tenant list
var TenantSortColumns = SortColumns{
	"name":      "name",
	"email":     "email",
	"type":      "type",
	"isActive":  "is_active",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ValidateSortOrder normalizes a direction to ASC or DESC. Anything else
// falls back to DESC.
func ValidateSortOrder(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// OrderClause builds an ORDER BY clause from the filter. Unknown keys use
// fallback so user input never reaches the SQL text.
func (s SortColumns) OrderClause(filter shared.Filter, fallback string) string {
	column, ok := s[strings.TrimSpace(filter.OrderBy)]
	if !ok {
		column = fallback
	}
	return column + " " + ValidateSortOrder(filter.OrderDir)
}
