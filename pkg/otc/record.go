package otc

import (
	"github.com/spf13/cast"
)

// Record is a single resource as returned by the provider. The schema is
// opaque and field-id driven, so records stay dynamic rather than being
// forced into per-resource structs.
type Record map[string]interface{}

// ID returns the record's numeric id, or false when the record has none.
func (r Record) ID() (int, bool) {
	raw, ok := r["id"]
	if !ok {
		return 0, false
	}

	id, err := cast.ToIntE(raw)
	if err != nil {
		return 0, false
	}

	return id, true
}

// String returns the named field as a string, empty when absent.
func (r Record) String(key string) string {
	raw, ok := r[key]
	if !ok {
		return ""
	}

	return cast.ToString(raw)
}

// Int returns the named field as an int, zero when absent or non-numeric.
func (r Record) Int(key string) int {
	raw, ok := r[key]
	if !ok {
		return 0
	}

	value, err := cast.ToIntE(raw)
	if err != nil {
		return 0
	}

	return value
}
