package census

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultBaseURL = "https://api.census.gov/data"
	DefaultYear    = "2019"
	dataset        = "acs/acs5"
)

var (
	ErrStateRequired = errors.New("State is required when querying by ZIP code")
	ErrNoLocation    = errors.New("No valid location provided")
)

// UpstreamError reports a failed or malformed Census API response.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("Census API error: %d - %s", e.Status, e.Message)
	}
	return fmt.Sprintf("Census API error: %s", e.Message)
}

// Query selects the geography. StateCode must already be a FIPS code.
type Query struct {
	StateCode string
	City      string
	ZipCode   string
}

type Client struct {
	baseURL    string
	year       string
	apiKey     string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithYear(year string) ClientOption {
	return func(c *Client) { c.year = year }
}

func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		year:       DefaultYear,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL builds the ACS5 request for q.
func (c *Client) URL(q Query) (string, error) {
	params := url.Values{}
	params.Set("get", strings.Join(Variables, ","))

	switch {
	case q.ZipCode != "":
		if q.StateCode == "" {
			return "", ErrStateRequired
		}
		params.Set("for", "zip code tabulation area:"+q.ZipCode)
		params.Set("in", "state:"+q.StateCode)
	case q.City != "" && q.StateCode != "":
		params.Set("for", "place:*")
		params.Set("in", "state:"+q.StateCode)
	case q.StateCode != "":
		params.Set("for", "state:"+q.StateCode)
	default:
		return "", ErrNoLocation
	}

	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.year, dataset, params.Encode()), nil
}

// Fetch returns the raw header and data rows for q.
func (c *Client) Fetch(ctx context.Context, q Query) (rows [][]string, err error) {
	ctx, span := otel.Tracer("census").Start(ctx, "census.fetch")
	span.SetAttributes(
		attribute.String("census.state", q.StateCode),
		attribute.Bool("census.city", q.City != ""),
		attribute.Bool("census.zip", q.ZipCode != ""),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	endpoint, err := c.URL(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build census request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &UpstreamError{Message: "Invalid response format from Census API"}
	}
	if len(rows) < 2 {
		return nil, &UpstreamError{Message: "Invalid data format received from Census API"}
	}

	return rows, nil
}
