package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opentoclose/internal/validate"
	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

func TestListParams(t *testing.T) {
	t.Parallel()

	t.Run("nil becomes empty map", func(t *testing.T) {
		t.Parallel()

		params, err := validate.ListParams(nil, nil)
		require.NoError(t, err)
		require.NotNil(t, params)
		assert.Empty(t, params)
	})

	t.Run("valid limit and offset pass", func(t *testing.T) {
		t.Parallel()

		params, err := validate.ListParams(map[string]interface{}{
			"limit":  50,
			"offset": 0,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 50, params["limit"])
		assert.Equal(t, 0, params["offset"])
	})

	t.Run("string values are coerced", func(t *testing.T) {
		t.Parallel()

		params, err := validate.ListParams(map[string]interface{}{
			"limit":  "25",
			"offset": "10",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 25, params["limit"])
		assert.Equal(t, 10, params["offset"])
	})

	t.Run("zero limit rejected", func(t *testing.T) {
		t.Parallel()

		_, err := validate.ListParams(map[string]interface{}{"limit": 0}, nil)
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		t.Parallel()

		_, err := validate.ListParams(map[string]interface{}{"limit": -5}, nil)
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
	})

	t.Run("non-numeric limit rejected naming the value", func(t *testing.T) {
		t.Parallel()

		_, err := validate.ListParams(map[string]interface{}{"limit": "lots"}, nil)
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
		assert.Contains(t, err.Error(), "lots")
	})

	t.Run("negative offset rejected", func(t *testing.T) {
		t.Parallel()

		_, err := validate.ListParams(map[string]interface{}{"offset": -1}, nil)
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
	})

	t.Run("oversized limit warns but passes", func(t *testing.T) {
		t.Parallel()

		logger := &captureLogger{}

		params, err := validate.ListParams(map[string]interface{}{"limit": 5000}, logger)
		require.NoError(t, err)
		assert.Equal(t, 5000, params["limit"])
		require.Len(t, logger.warns, 1)
	})

	t.Run("unrecognized keys pass through", func(t *testing.T) {
		t.Parallel()

		params, err := validate.ListParams(map[string]interface{}{"status": "Active"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Active", params["status"])
	})

	t.Run("input map is not mutated", func(t *testing.T) {
		t.Parallel()

		input := map[string]interface{}{"limit": "25"}

		_, err := validate.ListParams(input, nil)
		require.NoError(t, err)
		assert.Equal(t, "25", input["limit"])
	})
}

func TestPayload(t *testing.T) {
	t.Parallel()

	t.Run("nil payload rejected", func(t *testing.T) {
		t.Parallel()

		err := validate.Payload("contacts", nil, validate.OpCreate)
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		t.Parallel()

		err := validate.Payload("contacts", map[string]interface{}{}, validate.OpUpdate)
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
	})

	t.Run("create requires an identifying field", func(t *testing.T) {
		t.Parallel()

		err := validate.Payload("contacts", map[string]interface{}{
			"company": "Acme Realty",
		}, validate.OpCreate)
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "first_name")
	})

	t.Run("blank identifying values do not count", func(t *testing.T) {
		t.Parallel()

		err := validate.Payload("contacts", map[string]interface{}{
			"email": "   ",
		}, validate.OpCreate)
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
	})

	t.Run("one identifying field satisfies create", func(t *testing.T) {
		t.Parallel()

		err := validate.Payload("contacts", map[string]interface{}{
			"first_name": "Sam",
		}, validate.OpCreate)
		require.NoError(t, err)
	})

	t.Run("update payloads may be partial", func(t *testing.T) {
		t.Parallel()

		err := validate.Payload("contacts", map[string]interface{}{
			"company": "Acme Realty",
		}, validate.OpUpdate)
		require.NoError(t, err)
	})

	t.Run("identifying fields per resource", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			resource string
			data     map[string]interface{}
			wantErr  bool
		}{
			{"agents", map[string]interface{}{"email": "a@b.c"}, false},
			{"agents", map[string]interface{}{"phone": "555"}, true},
			{"tags", map[string]interface{}{"name": "hot"}, false},
			{"tags", map[string]interface{}{"color": "#fff"}, true},
			{"teams", map[string]interface{}{"name": "Listings"}, false},
			{"users", map[string]interface{}{"email": "u@b.c"}, false},
			{"property notes", map[string]interface{}{"content": "call back"}, false},
			{"property notes", map[string]interface{}{"note": "call back"}, false},
			{"property tasks", map[string]interface{}{"title": "inspect"}, false},
			{"property documents", map[string]interface{}{"name": "deed.pdf"}, false},
			{"property emails", map[string]interface{}{"subject": "closing"}, false},
			{"property contacts", map[string]interface{}{"contact_id": 4}, false},
			{"property contacts", map[string]interface{}{"role": "buyer"}, true},
		}

		for _, tt := range tests {
			err := validate.Payload(tt.resource, tt.data, validate.OpCreate)
			if tt.wantErr {
				assert.Error(t, err, "%s %v", tt.resource, tt.data)
			} else {
				assert.NoError(t, err, "%s %v", tt.resource, tt.data)
			}
		}
	})

	t.Run("email must contain at sign", func(t *testing.T) {
		t.Parallel()

		err := validate.Payload("contacts", map[string]interface{}{
			"email": "not-an-email",
		}, validate.OpCreate)
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("hex color format", func(t *testing.T) {
		t.Parallel()

		for _, good := range []string{"#fff", "#a1b2c3"} {
			err := validate.Payload("tags", map[string]interface{}{
				"name":  "hot",
				"color": good,
			}, validate.OpCreate)
			assert.NoError(t, err, good)
		}

		for _, bad := range []string{"fff", "#ff", "#12345", "red"} {
			err := validate.Payload("tags", map[string]interface{}{
				"name":  "hot",
				"color": bad,
			}, validate.OpCreate)
			assert.Error(t, err, bad)
		}
	})

	t.Run("bool fields reject truthy strings", func(t *testing.T) {
		t.Parallel()

		err := validate.Payload("contacts", map[string]interface{}{
			"first_name": "Sam",
			"is_active":  "true",
		}, validate.OpUpdate)
		require.Error(t, err)
		assert.True(t, otc.IsValidation(err))

		err = validate.Payload("contacts", map[string]interface{}{
			"first_name": "Sam",
			"is_active":  true,
		}, validate.OpUpdate)
		require.NoError(t, err)
	})
}

type captureLogger struct {
	warns []string
}

func (l *captureLogger) Debug(string, map[string]interface{}) {}
func (l *captureLogger) Info(string, map[string]interface{})  {}
func (l *captureLogger) Error(string, map[string]interface{}) {}

func (l *captureLogger) Warn(msg string, _ map[string]interface{}) {
	l.warns = append(l.warns, msg)
}
