package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// AssetSortFields contains allowed sort fields for assets
var AssetSortFields = map[string]bool{
	"id":                       true,
	"created_at":               true,
	"updated_at":               true,
	"asset_code":               true,
	"name":                     true,
	"status":                   true,
	"cost_basis":               true,
	"accumulated_depreciation": true,
	"net_book_value":           true,
	"useful_life_months":       true,
	"current_location":         true,
}

// ScheduleSortFields contains allowed sort fields for depreciation schedules
var ScheduleSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"period_date":         true,
	"asset_id":            true,
	"depreciation_amount": true,
	"net_book_value":      true,
}

// GRNSortFields contains allowed sort fields for goods receipt notes
var GRNSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"grn_number":   true,
	"receipt_date": true,
	"supplier":     true,
	"total_value":  true,
}
