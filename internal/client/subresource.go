package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/opentoclose/internal/http"
	"github.com/fivetwenty-io/opentoclose/internal/validate"
	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

// subResourceClient serves the property sub-resources (notes, tasks,
// documents, emails, contacts), all scoped under a parent property id.
type subResourceClient struct {
	httpClient *http.Client
	logger     otc.Logger
	name       string
	segment    string
}

func newSubResourceClient(httpClient *http.Client, logger otc.Logger, name, segment string) *subResourceClient {
	return &subResourceClient{
		httpClient: httpClient,
		logger:     logger,
		name:       name,
		segment:    segment,
	}
}

func (c *subResourceClient) collectionPath(propertyID int) string {
	return fmt.Sprintf("/properties/%d/%s", propertyID, c.segment)
}

func (c *subResourceClient) itemPath(propertyID, id int) string {
	return c.collectionPath(propertyID) + "/" + strconv.Itoa(id)
}

// List implements otc.SubResourceClient.List.
func (c *subResourceClient) List(ctx context.Context, propertyID int, params map[string]interface{}) ([]otc.Record, error) {
	validated, err := validate.ListParams(params, c.logger)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, c.collectionPath(propertyID), queryFromParams(validated))
	if err != nil {
		return nil, fmt.Errorf("listing %s for property %d: %w", c.name, propertyID, err)
	}

	return otc.Records(resp.JSON), nil
}

// Create implements otc.SubResourceClient.Create.
func (c *subResourceClient) Create(ctx context.Context, propertyID int, data map[string]interface{}) (otc.Record, error) {
	if err := validate.Payload(c.name, data, validate.OpCreate); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, c.collectionPath(propertyID), data)
	if err != nil {
		return nil, fmt.Errorf("creating %s for property %d: %w", c.name, propertyID, err)
	}

	return otc.SingleRecord(resp.JSON), nil
}

// Retrieve implements otc.SubResourceClient.Retrieve.
func (c *subResourceClient) Retrieve(ctx context.Context, propertyID, id int) (otc.Record, error) {
	resp, err := c.httpClient.Get(ctx, c.itemPath(propertyID, id), nil)
	if err != nil {
		return nil, fmt.Errorf("retrieving %s %d for property %d: %w", c.name, id, propertyID, err)
	}

	return otc.SingleRecord(resp.JSON), nil
}

// Update implements otc.MutableSubResourceClient.Update.
func (c *subResourceClient) Update(ctx context.Context, propertyID, id int, data map[string]interface{}) (otc.Record, error) {
	if err := validate.Payload(c.name, data, validate.OpUpdate); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, c.itemPath(propertyID, id), data)
	if err != nil {
		return nil, fmt.Errorf("updating %s %d for property %d: %w", c.name, id, propertyID, err)
	}

	return otc.SingleRecord(resp.JSON), nil
}

// Delete implements otc.SubResourceClient.Delete.
func (c *subResourceClient) Delete(ctx context.Context, propertyID, id int) error {
	_, err := c.httpClient.Delete(ctx, c.itemPath(propertyID, id))
	if err != nil {
		return fmt.Errorf("deleting %s %d for property %d: %w", c.name, id, propertyID, err)
	}

	return nil
}

// documentsClient adds multipart upload on top of the plain sub-resource
// behavior. JSON creates (e.g. linking an external URL) go through Create.
type documentsClient struct {
	*subResourceClient
}

// Upload implements otc.PropertyDocumentsClient.Upload. Form fields and the
// file part are passed through to the transport unchanged.
func (c *documentsClient) Upload(ctx context.Context, propertyID int, filename string, content []byte, fields map[string]string) (otc.Record, error) {
	if filename == "" {
		return nil, otc.NewValidationError("document upload requires a filename")
	}

	form := url.Values{}
	for key, value := range fields {
		form.Set(key, value)
	}

	files := []http.FilePart{{Field: "file", Name: filename, Content: content}}

	resp, err := c.httpClient.PostForm(ctx, c.collectionPath(propertyID), form, files)
	if err != nil {
		return nil, fmt.Errorf("uploading document for property %d: %w", propertyID, err)
	}

	return otc.SingleRecord(resp.JSON), nil
}

// fieldDefinitionsClient exposes the provider's property field schema.
type fieldDefinitionsClient struct {
	httpClient *http.Client
	logger     otc.Logger
}

// List implements otc.FieldDefinitionsClient.List.
func (c *fieldDefinitionsClient) List(ctx context.Context, params map[string]interface{}) ([]otc.Record, error) {
	validated, err := validate.ListParams(params, c.logger)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/property_fields", queryFromParams(validated))
	if err != nil {
		return nil, fmt.Errorf("listing property field definitions: %w", err)
	}

	return otc.Records(resp.JSON), nil
}
