// Package otcclient provides the main entry point for creating Open To Close
// API clients.
package otcclient

import (
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/opentoclose/internal/client"
	"github.com/fivetwenty-io/opentoclose/internal/constants"
	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

// New creates a new Open To Close API client. The API key comes from the
// config or, when absent there, the OPEN_TO_CLOSE_API_KEY environment
// variable; a missing key fails construction rather than the first call.
func New(config *otc.Config) (otc.Client, error) {
	if config == nil {
		config = &otc.Config{}
	}

	resolved := *config

	if resolved.APIKey == "" {
		resolved.APIKey = os.Getenv(constants.APIKeyEnvVar)
	}

	if resolved.APIKey == "" {
		return nil, otc.NewAuthenticationError(
			"API key is required: set Config.APIKey or the " + constants.APIKeyEnvVar + " environment variable")
	}

	resolved.BaseURL = normalizeBaseURL(resolved.BaseURL)

	built, err := client.New(&resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return built, nil
}

// NewWithKey creates a client for the production API with the given key.
func NewWithKey(apiKey string) (otc.Client, error) {
	return New(&otc.Config{APIKey: apiKey})
}

// normalizeBaseURL trims a trailing slash and assumes https:// when no scheme
// is given. An empty value falls back to the production API root.
func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
