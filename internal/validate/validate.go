// Package validate rejects malformed caller input before any network
// round-trip. Validators are pure apart from advisory logging and return
// *otc.Error with KindValidation so local failures and server-reported 400s
// share one taxonomy member.
package validate

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"

	"github.com/fivetwenty-io/opentoclose/internal/constants"
	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

// Operation distinguishes create payloads, which must carry identifying
// fields, from update payloads, which may be partial.
type Operation string

const (
	// OpCreate marks a create payload.
	OpCreate Operation = "create"

	// OpUpdate marks an update payload.
	OpUpdate Operation = "update"
)

// identifyingFields lists, per resource, the fields of which at least one
// must be present on create.
var identifyingFields = map[string][]string{
	"contacts":           {"email", "phone", "first_name", "last_name"},
	"agents":             {"email", "first_name", "last_name"},
	"tags":               {"name"},
	"teams":              {"name"},
	"users":              {"name", "email"},
	"property notes":     {"content", "note"},
	"property tasks":     {"title", "name"},
	"property documents": {"title", "name"},
	"property emails":    {"subject", "body"},
	"property contacts":  {"contact_id"},
}

// fieldRules maps known field names to their format rules.
var fieldRules = map[string]validation.Rule{
	"email":     validation.By(emailFormat),
	"color":     validation.By(hexColorFormat),
	"hex_color": validation.By(hexColorFormat),
}

// boolFields must carry actual booleans, not truthy strings.
var boolFields = map[string]struct{}{
	"is_active":  {},
	"is_primary": {},
	"is_default": {},
	"enabled":    {},
	"completed":  {},
}

// ListParams validates collection listing parameters. A nil map is accepted
// and becomes an empty one; limit and offset are coerced to integers and
// range-checked; unrecognized keys pass through unchanged. A limit above the
// provider's documented maximum is a warning, not an error.
func ListParams(params map[string]interface{}, logger otc.Logger) (map[string]interface{}, error) {
	if params == nil {
		return map[string]interface{}{}, nil
	}

	validated := make(map[string]interface{}, len(params))
	for key, value := range params {
		validated[key] = value
	}

	if raw, ok := validated["limit"]; ok {
		limit, err := cast.ToIntE(raw)
		if err != nil {
			return nil, otc.NewValidationError("limit must be an integer, got %v (%T)", raw, raw)
		}

		if limit <= 0 {
			return nil, otc.NewValidationError("limit must be greater than 0, got %d", limit)
		}

		if limit > constants.MaxAdvisoryLimit && logger != nil {
			logger.Warn("limit exceeds the provider's documented maximum", map[string]interface{}{
				"limit":   limit,
				"maximum": constants.MaxAdvisoryLimit,
			})
		}

		validated["limit"] = limit
	}

	if raw, ok := validated["offset"]; ok {
		offset, err := cast.ToIntE(raw)
		if err != nil {
			return nil, otc.NewValidationError("offset must be an integer, got %v (%T)", raw, raw)
		}

		if offset < 0 {
			return nil, otc.NewValidationError("offset must not be negative, got %d", offset)
		}

		validated["offset"] = offset
	}

	return validated, nil
}

// Payload validates a resource create/update payload. Violations name the
// field, the constraint, and the value received so callers can build
// actionable error messages.
func Payload(resource string, data map[string]interface{}, op Operation) error {
	if data == nil {
		return otc.NewValidationError("%s payload must be a non-empty map, got nil", resource)
	}

	if len(data) == 0 {
		return otc.NewValidationError("%s payload must not be empty", resource)
	}

	if op == OpCreate {
		if required, ok := identifyingFields[resource]; ok && !hasAny(data, required) {
			return otc.NewValidationError(
				"%s create requires at least one of: %s",
				resource, strings.Join(required, ", "),
			)
		}
	}

	fieldErrs := validation.Errors{}

	for field, value := range data {
		if rule, ok := fieldRules[field]; ok {
			if err := validation.Validate(value, rule); err != nil {
				fieldErrs[field] = err
			}
		}

		if _, ok := boolFields[field]; ok {
			if _, isBool := value.(bool); !isBool {
				fieldErrs[field] = fmt.Errorf("must be a boolean, got %v (%T)", value, value)
			}
		}
	}

	if len(fieldErrs) > 0 {
		return otc.NewValidationError("invalid %s payload: %s", resource, fieldErrs.Error())
	}

	return nil
}

// hasAny reports whether at least one of the named fields is present with a
// usable value.
func hasAny(data map[string]interface{}, fields []string) bool {
	for _, field := range fields {
		value, ok := data[field]
		if !ok || value == nil {
			continue
		}

		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}

		return true
	}

	return false
}

func emailFormat(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string, got %v (%T)", value, value)
	}

	if !strings.Contains(s, "@") {
		return fmt.Errorf("must contain '@', got %q", s)
	}

	return nil
}

func hexColorFormat(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string, got %v (%T)", value, value)
	}

	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return fmt.Errorf("must be a hex color like #fff or #ffffff, got %q", s)
	}

	return nil
}
