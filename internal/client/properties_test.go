package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

// tripleByID finds one {id, key, value} entry in a sent fields array.
func tripleByID(t *testing.T, body map[string]interface{}, fieldID float64) map[string]interface{} {
	t.Helper()

	fields, ok := body["fields"].([]interface{})
	require.True(t, ok, "payload carries no fields array: %v", body)

	for _, raw := range fields {
		entry, ok := raw.(map[string]interface{})
		require.True(t, ok)

		if entry["id"] == fieldID {
			return entry
		}
	}

	t.Fatalf("no field with id %v in %v", fieldID, fields)

	return nil
}

func teamsFixture() map[string]interface{} {
	return map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"id":   1,
				"name": "Listings",
				"team_members": []map[string]interface{}{
					{"id": 4201, "name": "Sam"},
					{"id": 4202, "name": "Alex"},
				},
			},
		},
	}
}

func TestPropertyCreateFromTitleString(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.handle(http.MethodGet, "/teams", http.StatusOK, teamsFixture())
	ts.handle(http.MethodPost, "/properties", http.StatusCreated, map[string]interface{}{"id": 501})

	c := newClient(t, ts)

	record, err := c.Properties().Create(context.Background(), "123 Main Street")
	require.NoError(t, err)

	id, _ := record.ID()
	assert.Equal(t, 501, id)

	last := ts.lastRequest(t)
	require.Equal(t, "/properties", last.path)

	assert.Equal(t, float64(4201), last.body["team_member_id"])
	assert.Equal(t, float64(1), last.body["time_zone_id"])

	fields, ok := last.body["fields"].([]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 3)

	title := tripleByID(t, last.body, 926565)
	assert.Equal(t, "contract_title", title["key"])
	assert.Equal(t, "123 Main Street", title["value"])

	clientType := tripleByID(t, last.body, 926553)
	assert.Equal(t, "contract_client_type", clientType["key"])
	assert.Equal(t, float64(797212), clientType["value"])

	status := tripleByID(t, last.body, 926554)
	assert.Equal(t, "contract_status", status["key"])
	assert.Equal(t, float64(797206), status["value"])
}

func TestPropertyCreateFromMap(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.handle(http.MethodPost, "/properties", http.StatusCreated, map[string]interface{}{"id": 502})

	c := newClient(t, ts)

	_, err := c.Properties().Create(context.Background(), map[string]interface{}{
		"title":           "456 Oak Avenue",
		"client_type":     "seller",
		"status":          "under contract",
		"purchase_amount": 350000,
		"team_member_id":  9000,
	})
	require.NoError(t, err)

	last := ts.lastRequest(t)
	assert.Equal(t, float64(9000), last.body["team_member_id"])

	clientType := tripleByID(t, last.body, 926553)
	assert.Equal(t, float64(797213), clientType["value"])

	status := tripleByID(t, last.body, 926554)
	assert.Equal(t, float64(797207), status["value"])

	amount := tripleByID(t, last.body, 926577)
	assert.Equal(t, "purchase_amount", amount["key"])
	assert.Equal(t, float64(350000), amount["value"])

	// Only the teams lookup was skipped; the create was the only request.
	assert.Len(t, ts.requests, 1)
}

func TestPropertyCreateOmitsUnsuppliedFields(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.handle(http.MethodPost, "/properties", http.StatusCreated, map[string]interface{}{"id": 503})

	c := newClient(t, ts)

	_, err := c.Properties().Create(context.Background(), map[string]interface{}{
		"title":          "789 Pine Road",
		"team_member_id": 9000,
	})
	require.NoError(t, err)

	last := ts.lastRequest(t)
	fields, ok := last.body["fields"].([]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 1)

	title := tripleByID(t, last.body, 926565)
	assert.Equal(t, "789 Pine Road", title["value"])
}

func TestPropertyCreateUnknownChoiceFailsClosed(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := newClient(t, ts)

	_, err := c.Properties().Create(context.Background(), map[string]interface{}{
		"title":          "1 Elm Court",
		"status":         "Sold",
		"team_member_id": 9000,
	})
	require.Error(t, err)
	assert.True(t, otc.IsValidation(err))
	assert.Contains(t, err.Error(), `invalid status "Sold"`)
	assert.Contains(t, err.Error(), "Under Contract")
	assert.Empty(t, ts.requests)
}

func TestPropertyCreateRequiresTitle(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := newClient(t, ts)
	ctx := context.Background()

	for _, input := range []interface{}{
		"",
		"   ",
		map[string]interface{}{"status": "Active"},
		map[string]interface{}{"title": ""},
		map[string]interface{}{"title": 42},
	} {
		_, err := c.Properties().Create(ctx, input)
		require.Error(t, err, "%v", input)
		assert.True(t, otc.IsValidation(err))
	}

	assert.Empty(t, ts.requests)
}

func TestPropertyCreateRejectsNegativeAmount(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := newClient(t, ts)

	_, err := c.Properties().Create(context.Background(), map[string]interface{}{
		"title":           "1 Elm Court",
		"purchase_amount": -1,
		"team_member_id":  9000,
	})
	require.Error(t, err)
	assert.True(t, otc.IsValidation(err))
}

func TestPropertyCreateWireFormatPassThrough(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.handle(http.MethodPost, "/properties", http.StatusCreated, map[string]interface{}{"id": 504})

	c := newClient(t, ts)

	_, err := c.Properties().Create(context.Background(), map[string]interface{}{
		"team_member_id": 9000,
		"time_zone_id":   5,
		"fields": []map[string]interface{}{
			{"id": 926565, "key": "contract_title", "value": "Wire Title"},
		},
	})
	require.NoError(t, err)

	last := ts.lastRequest(t)
	assert.Equal(t, float64(5), last.body["time_zone_id"])

	title := tripleByID(t, last.body, 926565)
	assert.Equal(t, "Wire Title", title["value"])
}

func TestPropertyCreateWireFormatValidated(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := newClient(t, ts)
	ctx := context.Background()

	tests := []struct {
		name  string
		input map[string]interface{}
	}{
		{
			name: "fields not an array",
			input: map[string]interface{}{
				"team_member_id": 9000,
				"fields":         "nope",
			},
		},
		{
			name: "entry missing key",
			input: map[string]interface{}{
				"team_member_id": 9000,
				"fields": []map[string]interface{}{
					{"id": 926565, "value": "Wire Title"},
				},
			},
		},
		{
			name: "non-numeric team member",
			input: map[string]interface{}{
				"team_member_id": "somebody",
				"fields": []map[string]interface{}{
					{"id": 926565, "key": "contract_title", "value": "Wire Title"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Properties().Create(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, otc.IsValidation(err))
		})
	}

	assert.Empty(t, ts.requests)
}

func TestTeamMemberFallbackUsesMembersKey(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.handle(http.MethodGet, "/teams", http.StatusOK, []map[string]interface{}{
		{
			"id": 1,
			"members": []map[string]interface{}{
				{"id": 7301},
			},
		},
	})
	ts.handle(http.MethodPost, "/properties", http.StatusCreated, map[string]interface{}{"id": 505})

	c := newClient(t, ts)

	_, err := c.Properties().Create(context.Background(), "2 Birch Lane")
	require.NoError(t, err)

	last := ts.lastRequest(t)
	assert.Equal(t, float64(7301), last.body["team_member_id"])
}

func TestTeamMemberFallbackFailsLoudly(t *testing.T) {
	t.Parallel()

	t.Run("teams lookup fails", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		c := newClient(t, ts)

		_, err := c.Properties().Create(context.Background(), "3 Cedar Way")
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
		assert.Contains(t, err.Error(), "pass team_member_id explicitly")
	})

	t.Run("no members anywhere", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.handle(http.MethodGet, "/teams", http.StatusOK, []map[string]interface{}{
			{"id": 1, "name": "Empty Team"},
		})

		c := newClient(t, ts)

		_, err := c.Properties().Create(context.Background(), "3 Cedar Way")
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
		assert.Contains(t, err.Error(), "no team members were found")
	})
}

func TestPropertyUpdateSendsKeysDirectly(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.handle(http.MethodPut, "/properties/501", http.StatusOK, map[string]interface{}{"id": 501})

	c := newClient(t, ts)

	_, err := c.Properties().Update(context.Background(), 501, map[string]interface{}{
		"contract_status": "Closed",
	})
	require.NoError(t, err)

	last := ts.lastRequest(t)
	assert.Equal(t, "Closed", last.body["contract_status"])
	_, hasFields := last.body["fields"]
	assert.False(t, hasFields)
}

func TestPropertyRetrieveAndDelete(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.handle(http.MethodGet, "/properties/501", http.StatusOK, map[string]interface{}{"id": 501})
	ts.handle(http.MethodDelete, "/properties/501", http.StatusNoContent, nil)

	c := newClient(t, ts)
	ctx := context.Background()

	record, err := c.Properties().Retrieve(ctx, 501)
	require.NoError(t, err)

	id, _ := record.ID()
	assert.Equal(t, 501, id)

	require.NoError(t, c.Properties().Delete(ctx, 501))
}

func TestCustomFieldMap(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.handle(http.MethodPost, "/properties", http.StatusCreated, map[string]interface{}{"id": 506})

	fieldMap := otc.DefaultFieldMap()
	fieldMap[otc.FieldTitle] = otc.FieldSpec{ID: 111, Key: "custom_title"}

	c, err := newClientWithFieldMap(ts, fieldMap)
	require.NoError(t, err)

	_, err = c.Properties().Create(context.Background(), map[string]interface{}{
		"title":          "Custom Schema",
		"team_member_id": 9000,
	})
	require.NoError(t, err)

	last := ts.lastRequest(t)
	title := tripleByID(t, last.body, 111)
	assert.Equal(t, "custom_title", title["key"])
}
