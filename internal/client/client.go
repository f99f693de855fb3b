// Package client wires the resource facades onto the shared transport. Each
// facade owns one resource path and delegates everything else to the common
// validate/request/normalize pipeline.
package client

import (
	"github.com/fivetwenty-io/opentoclose/internal/http"
	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

// Client implements otc.Client. All facades share one transport client and
// are built once at construction, so accessors are cheap and concurrency-safe.
type Client struct {
	httpClient *http.Client

	properties *PropertiesClient
	contacts   *resourceClient
	agents     *resourceClient
	tags       *resourceClient
	teams      *resourceClient
	users      *resourceClient

	propertyNotes     *subResourceClient
	propertyTasks     *subResourceClient
	propertyDocuments *documentsClient
	propertyEmails    *subResourceClient
	propertyContacts  *subResourceClient
	fieldDefinitions  *fieldDefinitionsClient
}

// New creates a fully wired client from the given configuration. The API key
// must already be resolved; base URL normalization is the caller's job too.
func New(config *otc.Config) (*Client, error) {
	if config == nil {
		return nil, otc.NewValidationError("config must not be nil")
	}

	if config.APIKey == "" {
		return nil, otc.NewAuthenticationError("API key is required")
	}

	opts := []http.Option{
		http.WithDebug(config.Debug),
	}

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		opts = append(opts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, http.WithTimeout(config.HTTPTimeout))
	}

	httpClient := http.NewClient(config.BaseURL, config.APIKey, opts...)

	c := &Client{
		httpClient: httpClient,

		contacts: newResourceClient(httpClient, config.Logger, "contacts", "/contacts"),
		agents:   newResourceClient(httpClient, config.Logger, "agents", "/agents"),
		tags:     newResourceClient(httpClient, config.Logger, "tags", "/tags"),
		teams:    newResourceClient(httpClient, config.Logger, "teams", "/teams"),
		users:    newResourceClient(httpClient, config.Logger, "users", "/users"),

		propertyNotes: newSubResourceClient(httpClient, config.Logger, "property notes", "notes"),
		propertyTasks: newSubResourceClient(httpClient, config.Logger, "property tasks", "tasks"),
		propertyDocuments: &documentsClient{
			subResourceClient: newSubResourceClient(httpClient, config.Logger, "property documents", "documents"),
		},
		propertyEmails:   newSubResourceClient(httpClient, config.Logger, "property emails", "emails"),
		propertyContacts: newSubResourceClient(httpClient, config.Logger, "property contacts", "contacts"),
		fieldDefinitions: &fieldDefinitionsClient{httpClient: httpClient, logger: config.Logger},
	}

	c.properties = NewPropertiesClient(httpClient, config.Logger, config.FieldMap, c.teams)

	return c, nil
}

// Properties implements otc.Client.Properties.
func (c *Client) Properties() otc.PropertiesClient { return c.properties }

// Contacts implements otc.Client.Contacts.
func (c *Client) Contacts() otc.ResourceClient { return c.contacts }

// Agents implements otc.Client.Agents.
func (c *Client) Agents() otc.ResourceClient { return c.agents }

// Tags implements otc.Client.Tags.
func (c *Client) Tags() otc.ResourceClient { return c.tags }

// Teams implements otc.Client.Teams.
func (c *Client) Teams() otc.ResourceClient { return c.teams }

// Users implements otc.Client.Users.
func (c *Client) Users() otc.ResourceClient { return c.users }

// PropertyNotes implements otc.Client.PropertyNotes.
func (c *Client) PropertyNotes() otc.MutableSubResourceClient { return c.propertyNotes }

// PropertyTasks implements otc.Client.PropertyTasks.
func (c *Client) PropertyTasks() otc.MutableSubResourceClient { return c.propertyTasks }

// PropertyDocuments implements otc.Client.PropertyDocuments.
func (c *Client) PropertyDocuments() otc.PropertyDocumentsClient { return c.propertyDocuments }

// PropertyEmails implements otc.Client.PropertyEmails.
func (c *Client) PropertyEmails() otc.SubResourceClient { return c.propertyEmails }

// PropertyContacts implements otc.Client.PropertyContacts.
func (c *Client) PropertyContacts() otc.SubResourceClient { return c.propertyContacts }

// PropertyFieldDefinitions implements otc.Client.PropertyFieldDefinitions.
func (c *Client) PropertyFieldDefinitions() otc.FieldDefinitionsClient { return c.fieldDefinitions }
