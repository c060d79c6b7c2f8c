// Package upstream fetches station and observation data from the remote weather service
// and normalizes it into the dashboard model.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// Upstream errors.
var (
	ErrNetwork           = errors.New("weather service is unreachable")
	ErrDecode            = errors.New("invalid weather data format")
	ErrNotFound          = errors.New("no weather data available for this station")
	ErrServer            = errors.New("weather service failed")
	ErrUnresolvedStation = errors.New("station is not resolved")
)

// Client is a client of the upstream weather service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates new Client. baseURL is used as is, without a trailing slash.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// get performs a GET request. rawQuery must already be encoded.
func (c *Client) get(ctx context.Context, path, rawQuery string) (*http.Response, error) {
	target := c.baseURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get %s: %v", ErrNetwork, path, err)
	}

	return resp, nil
}

// decodeJSON decodes the response body into v, converting it to UTF-8 first
// when the response declares another charset.
func decodeJSON(resp *http.Response, v interface{}) error {
	body, err := bodyReader(resp)
	if err != nil {
		return err
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrDecode, err)
	}

	return nil
}

func bodyReader(resp *http.Response) (io.Reader, error) {
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		return resp.Body, nil
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return resp.Body, nil
	}

	label, ok := params["charset"]
	if !ok || strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8") {
		return resp.Body, nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("%w: unsupported charset %q", ErrDecode, label)
	}
	if name == "utf-8" {
		return resp.Body, nil
	}

	return transform.NewReader(resp.Body, enc.NewDecoder()), nil
}

// discard drains and closes the body so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
