package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cast"

	"github.com/fivetwenty-io/opentoclose/internal/http"
	"github.com/fivetwenty-io/opentoclose/internal/validate"
	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

// resourceClient is the shared implementation behind every top-level facade
// whose wire format is "send the caller's keys directly". Each method runs
// the same pipeline: validate, one HTTP call, normalize the envelope.
type resourceClient struct {
	httpClient *http.Client
	logger     otc.Logger
	name       string
	path       string
}

func newResourceClient(httpClient *http.Client, logger otc.Logger, name, path string) *resourceClient {
	return &resourceClient{
		httpClient: httpClient,
		logger:     logger,
		name:       name,
		path:       path,
	}
}

// List implements otc.ResourceClient.List.
func (c *resourceClient) List(ctx context.Context, params map[string]interface{}) ([]otc.Record, error) {
	validated, err := validate.ListParams(params, c.logger)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, c.path, queryFromParams(validated))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.name, err)
	}

	return otc.Records(resp.JSON), nil
}

// Create implements otc.ResourceClient.Create.
func (c *resourceClient) Create(ctx context.Context, data map[string]interface{}) (otc.Record, error) {
	if err := validate.Payload(c.name, data, validate.OpCreate); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, c.path, data)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.name, err)
	}

	return otc.SingleRecord(resp.JSON), nil
}

// Retrieve implements otc.ResourceClient.Retrieve.
func (c *resourceClient) Retrieve(ctx context.Context, id int) (otc.Record, error) {
	resp, err := c.httpClient.Get(ctx, c.path+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, fmt.Errorf("retrieving %s %d: %w", c.name, id, err)
	}

	return otc.SingleRecord(resp.JSON), nil
}

// Update implements otc.ResourceClient.Update.
func (c *resourceClient) Update(ctx context.Context, id int, data map[string]interface{}) (otc.Record, error) {
	if err := validate.Payload(c.name, data, validate.OpUpdate); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, c.path+"/"+strconv.Itoa(id), data)
	if err != nil {
		return nil, fmt.Errorf("updating %s %d: %w", c.name, id, err)
	}

	return otc.SingleRecord(resp.JSON), nil
}

// Delete implements otc.ResourceClient.Delete.
func (c *resourceClient) Delete(ctx context.Context, id int) error {
	_, err := c.httpClient.Delete(ctx, c.path+"/"+strconv.Itoa(id))
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", c.name, id, err)
	}

	return nil
}

// queryFromParams flattens validated listing parameters into query values.
func queryFromParams(params map[string]interface{}) url.Values {
	if len(params) == 0 {
		return nil
	}

	query := url.Values{}
	for key, value := range params {
		query.Set(key, cast.ToString(value))
	}

	return query
}
