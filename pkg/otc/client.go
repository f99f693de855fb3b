package otc

import (
	"context"
	"net/http"
	"time"
)

// Logger is the structured logger interface used by the HTTP layer and the
// validators. Consumers adapt their own logger to it; when nil, diagnostics
// are dropped.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an otc.Client.
//
// APIKey is resolved by otcclient.New in this order: explicit value here,
// then the OPEN_TO_CLOSE_API_KEY environment variable. Absence of both is a
// construction-time authentication error, never deferred to the first call.
//
// The provider requires the key as an api_token query parameter on every
// request; the transport preserves that wire contract exactly.
type Config struct {
	// APIKey is the provider-issued bearer token.
	APIKey string

	// BaseURL defaults to https://api.opentoclose.com/v1. A trailing slash
	// is trimmed and https:// is assumed when no scheme is given.
	BaseURL string

	// HTTPTimeout overrides the default timeout of the underlying session.
	// Per-call deadlines should be set through context.
	HTTPTimeout time.Duration

	// Debug enables request/response logging when a Logger is provided.
	Debug bool

	// Logger receives diagnostics; failed requests are always logged here.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// HTTPClient replaces the default pooled session, mainly for tests.
	HTTPClient *http.Client

	// FieldMap replaces the provider's production property field schema.
	// When nil, DefaultFieldMap() is used.
	FieldMap FieldMap
}

// ResourceClient is the uniform contract of a top-level resource facade.
// Every method performs exactly: validate input, execute one HTTP call,
// normalize the response envelope, return.
type ResourceClient interface {
	List(ctx context.Context, params map[string]interface{}) ([]Record, error)
	Create(ctx context.Context, data map[string]interface{}) (Record, error)
	Retrieve(ctx context.Context, id int) (Record, error)
	Update(ctx context.Context, id int, data map[string]interface{}) (Record, error)
	Delete(ctx context.Context, id int) error
}

// PropertiesClient is the properties facade. Create accepts a bare title
// string, a human-keyed map, or an already-wire-format map; the first two are
// translated into the provider's field-id schema before the request is sent.
type PropertiesClient interface {
	List(ctx context.Context, params map[string]interface{}) ([]Record, error)
	Create(ctx context.Context, input interface{}) (Record, error)
	Retrieve(ctx context.Context, id int) (Record, error)
	Update(ctx context.Context, id int, data map[string]interface{}) (Record, error)
	Delete(ctx context.Context, id int) error
}

// SubResourceClient is the contract of a property sub-resource facade scoped
// under a parent property id.
type SubResourceClient interface {
	List(ctx context.Context, propertyID int, params map[string]interface{}) ([]Record, error)
	Create(ctx context.Context, propertyID int, data map[string]interface{}) (Record, error)
	Retrieve(ctx context.Context, propertyID, id int) (Record, error)
	Delete(ctx context.Context, propertyID, id int) error
}

// MutableSubResourceClient adds Update for sub-resources the provider allows
// to be edited in place (notes, tasks, documents).
type MutableSubResourceClient interface {
	SubResourceClient
	Update(ctx context.Context, propertyID, id int, data map[string]interface{}) (Record, error)
}

// PropertyDocumentsClient adds multipart upload to the documents facade.
type PropertyDocumentsClient interface {
	MutableSubResourceClient
	Upload(ctx context.Context, propertyID int, filename string, content []byte, fields map[string]string) (Record, error)
}

// FieldDefinitionsClient exposes the provider's property field schema so
// callers can inspect the ids behind the static FieldMap.
type FieldDefinitionsClient interface {
	List(ctx context.Context, params map[string]interface{}) ([]Record, error)
}

// Client provides access to every resource facade.
type Client interface {
	Properties() PropertiesClient
	Contacts() ResourceClient
	Agents() ResourceClient
	Tags() ResourceClient
	Teams() ResourceClient
	Users() ResourceClient

	PropertyNotes() MutableSubResourceClient
	PropertyTasks() MutableSubResourceClient
	PropertyDocuments() PropertyDocumentsClient
	PropertyEmails() SubResourceClient
	PropertyContacts() SubResourceClient
	PropertyFieldDefinitions() FieldDefinitionsClient
}
