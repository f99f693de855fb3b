package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/opentoclose/internal/http"
	"github.com/fivetwenty-io/opentoclose/internal/validate"
	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

const propertiesPath = "/properties"

// teamLister is the slice of the teams facade the property translator needs
// for the team-member fallback lookup.
type teamLister interface {
	List(ctx context.Context, params map[string]interface{}) ([]otc.Record, error)
}

// PropertiesClient implements otc.PropertiesClient. Unlike every other
// resource, property creates are translated from human input into the
// provider's nested field-id schema before the request is issued.
type PropertiesClient struct {
	httpClient *http.Client
	logger     otc.Logger
	fieldMap   otc.FieldMap
	teams      teamLister
}

// NewPropertiesClient creates the properties facade. teams is consulted only
// when a create payload omits team_member_id.
func NewPropertiesClient(httpClient *http.Client, logger otc.Logger, fieldMap otc.FieldMap, teams teamLister) *PropertiesClient {
	if fieldMap == nil {
		fieldMap = otc.DefaultFieldMap()
	}

	return &PropertiesClient{
		httpClient: httpClient,
		logger:     logger,
		fieldMap:   fieldMap,
		teams:      teams,
	}
}

// List implements otc.PropertiesClient.List.
func (c *PropertiesClient) List(ctx context.Context, params map[string]interface{}) ([]otc.Record, error) {
	validated, err := validate.ListParams(params, c.logger)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, propertiesPath, queryFromParams(validated))
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}

	return otc.Records(resp.JSON), nil
}

// Create implements otc.PropertiesClient.Create. input is a bare title
// string, a human-keyed map, or an already-wire-format map (detected by the
// presence of both "fields" and "team_member_id").
func (c *PropertiesClient) Create(ctx context.Context, input interface{}) (otc.Record, error) {
	payload, err := c.buildCreatePayload(ctx, input)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, propertiesPath, payload)
	if err != nil {
		return nil, fmt.Errorf("creating property: %w", err)
	}

	return otc.SingleRecord(resp.JSON), nil
}

// Retrieve implements otc.PropertiesClient.Retrieve.
func (c *PropertiesClient) Retrieve(ctx context.Context, id int) (otc.Record, error) {
	resp, err := c.httpClient.Get(ctx, propertiesPath+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, fmt.Errorf("retrieving property %d: %w", id, err)
	}

	return otc.SingleRecord(resp.JSON), nil
}

// Update implements otc.PropertiesClient.Update. Updates send the caller's
// keys directly; only creates go through the field-mapping translator.
func (c *PropertiesClient) Update(ctx context.Context, id int, data map[string]interface{}) (otc.Record, error) {
	if err := validate.Payload("properties", data, validate.OpUpdate); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, propertiesPath+"/"+strconv.Itoa(id), data)
	if err != nil {
		return nil, fmt.Errorf("updating property %d: %w", id, err)
	}

	return otc.SingleRecord(resp.JSON), nil
}

// Delete implements otc.PropertiesClient.Delete.
func (c *PropertiesClient) Delete(ctx context.Context, id int) error {
	_, err := c.httpClient.Delete(ctx, propertiesPath+"/"+strconv.Itoa(id))
	if err != nil {
		return fmt.Errorf("deleting property %d: %w", id, err)
	}

	return nil
}
