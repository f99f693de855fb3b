package otc_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

func TestErrorFromStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		wantKind   otc.Kind
		check      func(error) bool
	}{
		{"400 maps to validation", 400, otc.KindValidation, otc.IsValidation},
		{"401 maps to authentication", 401, otc.KindAuthentication, otc.IsAuthentication},
		{"404 maps to not found", 404, otc.KindNotFound, otc.IsNotFound},
		{"429 maps to rate limit", 429, otc.KindRateLimit, otc.IsRateLimit},
		{"500 maps to server", 500, otc.KindServer, otc.IsServer},
		{"503 maps to server", 503, otc.KindServer, otc.IsServer},
		{"402 falls back to api", 402, otc.KindAPI, nil},
		{"418 falls back to api", 418, otc.KindAPI, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := otc.ErrorFromStatus(tt.statusCode, "boom", nil)
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.statusCode, err.StatusCode)

			if tt.check != nil {
				assert.True(t, tt.check(err))
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("includes status code when set", func(t *testing.T) {
		t.Parallel()

		err := otc.ErrorFromStatus(429, "slow down", nil)
		assert.Equal(t, "slow down (status: 429)", err.Error())
	})

	t.Run("includes cause for network failures", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		err := otc.NewNetworkError("GET /contacts failed", cause)
		assert.Equal(t, "GET /contacts failed: connection refused", err.Error())
		assert.Equal(t, cause, errors.Unwrap(err))
	})

	t.Run("message only for local validation", func(t *testing.T) {
		t.Parallel()

		err := otc.NewValidationError("limit must be greater than 0, got %d", -1)
		assert.Equal(t, "limit must be greater than 0, got -1", err.Error())
		assert.Zero(t, err.StatusCode)
	})
}

func TestRateLimitRetryAfter(t *testing.T) {
	t.Parallel()

	err := otc.ErrorFromStatus(429, "slow down", nil)
	err.RetryAfter = 30 * time.Second

	var apiErr *otc.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 30*time.Second, apiErr.RetryAfter)
	assert.True(t, otc.IsRateLimit(err))
}

func TestIsHelpersMatchThroughWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("listing contacts: %w", otc.ErrorFromStatus(404, "no such contact", nil))
	assert.True(t, otc.IsNotFound(err))
	assert.False(t, otc.IsValidation(err))
	assert.False(t, otc.IsNotFound(errors.New("plain")))
}
