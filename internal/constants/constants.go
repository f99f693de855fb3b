package constants

import "time"

// Provider endpoints and credential resolution.
const (
	// DefaultBaseURL is the production API root, including the version
	// segment.
	DefaultBaseURL = "https://api.opentoclose.com/v1"

	// APIKeyEnvVar is the environment variable consulted when no explicit
	// API key is configured.
	APIKeyEnvVar = "OPEN_TO_CLOSE_API_KEY"
)

// HTTP defaults.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick verification calls.
	ShortHTTPTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client on the wire.
	DefaultUserAgent = "opentoclose-go"
)

// Listing-parameter bounds.
const (
	// MaxAdvisoryLimit is the provider's documented per-page maximum.
	// Larger limits are passed through with a warning, not rejected.
	MaxAdvisoryLimit = 1000
)

// File and directory permissions for CLI configuration.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)
