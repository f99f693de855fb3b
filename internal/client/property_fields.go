package client

import (
	"context"
	"strings"

	"github.com/spf13/cast"

	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

// buildCreatePayload converts property-create input into the provider's wire
// format. A bare string is shorthand for a title-only property with the
// default client type and status; a human-keyed map is translated field by
// field; a map already carrying both "fields" and "team_member_id" is taken
// to be wire format and passes through after structural validation.
func (c *PropertiesClient) buildCreatePayload(ctx context.Context, input interface{}) (map[string]interface{}, error) {
	switch value := input.(type) {
	case string:
		if strings.TrimSpace(value) == "" {
			return nil, otc.NewValidationError("property title must not be empty")
		}

		return c.translate(ctx, map[string]interface{}{
			otc.FieldTitle:      value,
			otc.FieldClientType: otc.DefaultClientType,
			otc.FieldStatus:     otc.DefaultStatus,
		})
	case map[string]interface{}:
		if isWireFormat(value) {
			if err := validateWirePayload(value); err != nil {
				return nil, err
			}

			return value, nil
		}

		return c.translate(ctx, value)
	default:
		return nil, otc.NewValidationError(
			"property create accepts a title string or a map, got %T", input)
	}
}

// translate maps human keys onto {id, key, value} triples. A triple is only
// emitted for a key the caller actually supplied; optional fields are omitted
// entirely rather than sent with null values.
func (c *PropertiesClient) translate(ctx context.Context, data map[string]interface{}) (map[string]interface{}, error) {
	title, err := titleFrom(data)
	if err != nil {
		return nil, err
	}

	teamMemberID, err := c.resolveTeamMemberID(ctx, data)
	if err != nil {
		return nil, err
	}

	fields := make([]map[string]interface{}, 0, 4)

	titleTriple, err := c.fieldMap.Triple(otc.FieldTitle, title)
	if err != nil {
		return nil, err
	}

	fields = append(fields, titleTriple)

	for _, choice := range []string{otc.FieldClientType, otc.FieldStatus} {
		raw, ok := data[choice]
		if !ok {
			continue
		}

		label, ok := raw.(string)
		if !ok {
			return nil, otc.NewValidationError("%s must be a string, got %v (%T)", choice, raw, raw)
		}

		optionID, err := c.fieldMap.ResolveOption(choice, label)
		if err != nil {
			return nil, err
		}

		triple, err := c.fieldMap.Triple(choice, optionID)
		if err != nil {
			return nil, err
		}

		fields = append(fields, triple)
	}

	if raw, ok := data[otc.FieldPurchaseAmount]; ok {
		amount, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, otc.NewValidationError("purchase_amount must be a number, got %v (%T)", raw, raw)
		}

		if amount < 0 {
			return nil, otc.NewValidationError("purchase_amount must not be negative, got %v", amount)
		}

		triple, err := c.fieldMap.Triple(otc.FieldPurchaseAmount, amount)
		if err != nil {
			return nil, err
		}

		fields = append(fields, triple)
	}

	return map[string]interface{}{
		"team_member_id": teamMemberID,
		"time_zone_id":   otc.DefaultTimeZoneID,
		"fields":         fields,
	}, nil
}

// resolveTeamMemberID prefers the caller's explicit value; otherwise it takes
// the first team member found across the teams collection. When neither works
// the create fails loudly; there is no hard-coded default id to fall back on.
func (c *PropertiesClient) resolveTeamMemberID(ctx context.Context, data map[string]interface{}) (int, error) {
	if raw, ok := data["team_member_id"]; ok {
		id, err := cast.ToIntE(raw)
		if err != nil {
			return 0, otc.NewValidationError("team_member_id must be an integer, got %v (%T)", raw, raw)
		}

		return id, nil
	}

	teams, err := c.teams.List(ctx, nil)
	if err != nil {
		resolveErr := otc.NewValidationError(
			"team_member_id was not supplied and the teams lookup failed; pass team_member_id explicitly")
		resolveErr.Err = err

		return 0, resolveErr
	}

	for _, team := range teams {
		if id, ok := firstMemberID(team); ok {
			return id, nil
		}
	}

	return 0, otc.NewValidationError(
		"team_member_id was not supplied and no team members were found; pass team_member_id explicitly")
}

// firstMemberID digs the first member id out of a team record. Both field
// names have been observed in provider responses.
func firstMemberID(team otc.Record) (int, bool) {
	for _, key := range []string{"team_members", "members"} {
		members, ok := team[key].([]interface{})
		if !ok {
			continue
		}

		for _, raw := range members {
			member, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}

			if id, ok := otc.Record(member).ID(); ok {
				return id, true
			}
		}
	}

	return 0, false
}

func titleFrom(data map[string]interface{}) (string, error) {
	raw, ok := data[otc.FieldTitle]
	if !ok {
		return "", otc.NewValidationError("property create requires a title")
	}

	title, ok := raw.(string)
	if !ok {
		return "", otc.NewValidationError("title must be a string, got %v (%T)", raw, raw)
	}

	if strings.TrimSpace(title) == "" {
		return "", otc.NewValidationError("property title must not be empty")
	}

	return title, nil
}

func isWireFormat(data map[string]interface{}) bool {
	_, hasFields := data["fields"]
	_, hasTeamMember := data["team_member_id"]

	return hasFields && hasTeamMember
}

// validateWirePayload checks the structure of an already-wire-format payload:
// fields must be an array of {id, key, value} entries.
func validateWirePayload(data map[string]interface{}) error {
	entries, err := wireEntries(data["fields"])
	if err != nil {
		return err
	}

	for i, entry := range entries {
		for _, required := range []string{"id", "key", "value"} {
			if _, ok := entry[required]; !ok {
				return otc.NewValidationError("fields[%d] is missing %q", i, required)
			}
		}
	}

	if _, err := cast.ToIntE(data["team_member_id"]); err != nil {
		return otc.NewValidationError(
			"team_member_id must be an integer, got %v (%T)", data["team_member_id"], data["team_member_id"])
	}

	return nil
}

func wireEntries(raw interface{}) ([]map[string]interface{}, error) {
	switch value := raw.(type) {
	case []map[string]interface{}:
		return value, nil
	case []interface{}:
		entries := make([]map[string]interface{}, 0, len(value))

		for i, item := range value {
			entry, ok := item.(map[string]interface{})
			if !ok {
				return nil, otc.NewValidationError("fields[%d] must be an object, got %v (%T)", i, item, item)
			}

			entries = append(entries, entry)
		}

		return entries, nil
	default:
		return nil, otc.NewValidationError("fields must be an array, got %v (%T)", raw, raw)
	}
}
