package otc

import (
	"fmt"
	"sort"
	"strings"
)

// Human input keys accepted by property create.
const (
	FieldTitle          = "title"
	FieldClientType     = "client_type"
	FieldStatus         = "status"
	FieldPurchaseAmount = "purchase_amount"
)

// Defaults applied when a property is created from a bare title string.
const (
	DefaultClientType = "Buyer"
	DefaultStatus     = "Active"

	// DefaultTimeZoneID is the provider's fixed default time zone.
	DefaultTimeZoneID = 1
)

// FieldSpec describes one provider-defined property field: its numeric field
// id, its wire key, and for choice fields the label-to-option-id table.
type FieldSpec struct {
	ID      int
	Key     string
	Options map[string]int
}

// FieldMap maps human input keys to provider field specs. It is a plain value
// type so tests and per-environment configurations can swap the table without
// touching translator logic.
type FieldMap map[string]FieldSpec

// DefaultFieldMap returns a fresh copy of the provider's production schema.
// Callers may mutate the copy freely.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		FieldTitle: {
			ID:  926565,
			Key: "contract_title",
		},
		FieldClientType: {
			ID:  926553,
			Key: "contract_client_type",
			Options: map[string]int{
				"Buyer":  797212,
				"Seller": 797213,
				"Dual":   797214,
			},
		},
		FieldStatus: {
			ID:  926554,
			Key: "contract_status",
			Options: map[string]int{
				"Pre-MLS":        797205,
				"Active":         797206,
				"Under Contract": 797207,
				"Pending":        797208,
				"Closed":         797209,
				"Terminated":     797210,
				"Withdrawn":      797211,
			},
		},
		FieldPurchaseAmount: {
			ID:  926577,
			Key: "purchase_amount",
		},
	}
}

// ResolveOption resolves a human label to its numeric option id,
// case-insensitively. An unmatched label fails closed with a validation error
// enumerating the valid choices.
func (m FieldMap) ResolveOption(field, label string) (int, error) {
	spec, ok := m[field]
	if !ok || len(spec.Options) == 0 {
		return 0, NewValidationError("field %q has no option table", field)
	}

	for canonical, id := range spec.Options {
		if strings.EqualFold(canonical, label) {
			return id, nil
		}
	}

	return 0, NewValidationError(
		"invalid %s %q: valid choices are %s",
		field, label, strings.Join(m.OptionLabels(field), ", "),
	)
}

// OptionLabels returns the canonical option labels for a choice field, sorted
// for stable error messages.
func (m FieldMap) OptionLabels(field string) []string {
	spec, ok := m[field]
	if !ok {
		return nil
	}

	labels := make([]string, 0, len(spec.Options))
	for label := range spec.Options {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	return labels
}

// Triple builds the wire-format {id, key, value} entry for a field.
func (m FieldMap) Triple(field string, value interface{}) (map[string]interface{}, error) {
	spec, ok := m[field]
	if !ok {
		return nil, NewValidationError("unknown property field %q", field)
	}

	return map[string]interface{}{
		"id":    spec.ID,
		"key":   spec.Key,
		"value": value,
	}, nil
}

// String implements fmt.Stringer for debug logging.
func (m FieldMap) String() string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return fmt.Sprintf("FieldMap(%s)", strings.Join(keys, ", "))
}
