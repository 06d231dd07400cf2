// Package geoapify implements the upstream provider client for the Geoapify
// geocoding and places API.
package geoapify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"localfind/internal/core"
	"localfind/internal/httpclient"
)

const (
	providerName = "geoapify"

	defaultBaseURL = "https://api.geoapify.com/v2"

	// Per-operation timeouts. Nearby search is the heavier query.
	geocodeTimeout = 10 * time.Second
	placesTimeout  = 15 * time.Second
)

// Client issues requests to the Geoapify API. Safe for concurrent use.
// Failures of any kind (transport, timeout, non-success status) surface as a
// single upstream error; the client never retries.
type Client struct {
	geocodeClient *http.Client
	placesClient  *http.Client
	baseURL       string
	apiKey        string
}

// New creates a Geoapify client authenticated with apiKey.
func New(apiKey string) *Client {
	return &Client{
		geocodeClient: httpclient.NewWithTimeout(geocodeTimeout),
		placesClient:  httpclient.NewWithTimeout(placesTimeout),
		baseURL:       defaultBaseURL,
		apiKey:        apiKey,
	}
}

// NewWithHTTPClient creates a client that uses the given HTTP client for all
// operations. Intended for tests.
func NewWithHTTPClient(apiKey string, client *http.Client) *Client {
	return &Client{
		geocodeClient: client,
		placesClient:  client,
		baseURL:       defaultBaseURL,
		apiKey:        apiKey,
	}
}

// SetBaseURL overrides the API base URL.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// Geocode resolves a free-text city query to candidate features.
func (c *Client) Geocode(ctx context.Context, city string) (*core.FeatureCollection, error) {
	params := url.Values{}
	params.Set("text", city)
	params.Set("limit", "1")
	return c.do(ctx, c.geocodeClient, "/geocode/search", params)
}

// ReverseGeocode resolves coordinates to address features. The provider
// spells the longitude parameter "lon".
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (*core.FeatureCollection, error) {
	params := url.Values{}
	params.Set("lat", formatFloat(lat))
	params.Set("lon", formatFloat(lng))
	return c.do(ctx, c.geocodeClient, "/geocode/reverse", params)
}

// Nearby searches for places around a point. The circular geofence filter and
// the proximity bias share the same center, so the provider returns results
// in distance order.
func (c *Client) Nearby(ctx context.Context, lat, lng float64, categories []string, radiusMeters, limit int) (*core.FeatureCollection, error) {
	params := url.Values{}
	params.Set("categories", strings.Join(categories, ","))
	params.Set("filter", fmt.Sprintf("circle:%s,%s,%d", formatFloat(lng), formatFloat(lat), radiusMeters))
	params.Set("bias", fmt.Sprintf("proximity:%s,%s", formatFloat(lng), formatFloat(lat)))
	params.Set("limit", strconv.Itoa(limit))
	return c.do(ctx, c.placesClient, "/places", params)
}

func (c *Client) do(ctx context.Context, client *http.Client, endpoint string, params url.Values) (*core.FeatureCollection, error) {
	params.Set("apiKey", c.apiKey)
	requestURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, core.NewUpstreamError(providerName, "failed to build request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, core.NewUpstreamError(providerName, "request failed: "+err.Error(), err)
	}
	defer func() {
		_ = resp.Body.Close() //nolint:errcheck
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewUpstreamError(providerName, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, core.NewUpstreamError(providerName, errorMessage(resp.StatusCode, body), nil)
	}

	var collection core.FeatureCollection
	if err := json.Unmarshal(body, &collection); err != nil {
		return nil, core.NewUpstreamError(providerName, "failed to parse response", err)
	}

	return &collection, nil
}

// errorMessage extracts the provider's error message from a failure body,
// falling back to the bare status code.
func errorMessage(statusCode int, body []byte) string {
	if message := gjson.GetBytes(body, "message").String(); message != "" {
		return fmt.Sprintf("status %d: %s", statusCode, message)
	}
	return fmt.Sprintf("unexpected status %d", statusCode)
}

// formatFloat renders a coordinate in shortest round-trip form.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
