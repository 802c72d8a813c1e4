// Package genshindev is a client for the community data API at api.genshin.dev.
package genshindev

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
)

const DefaultBaseURL = "https://api.genshin.dev"

var ErrCharacterNotFound = errors.New("character not found")

// RequestError is returned when the API answers with a non-2xx status.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("genshin.dev request failed with status %d: %s", e.Status, e.Body)
}

// Client talks to a genshin.dev compatible API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// makeAPIRequest fetches endpoint and decodes the JSON body into result.
func (c *Client) makeAPIRequest(ctx context.Context, endpoint string, result any) error {
	body, err := c.get(ctx, c.baseURL+endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	return nil
}

// Characters lists every character id known to the API.
func (c *Client) Characters(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.makeAPIRequest(ctx, "/characters", &ids); err != nil {
		return nil, err
	}
	for i, id := range ids {
		if id == "traveler-anemo" {
			ids[i] = "traveler"
		}
	}
	return ids, nil
}

// CharacterIconURL returns the icon URL of a character id.
func (c *Client) CharacterIconURL(id string) string {
	return fmt.Sprintf("%s/characters/%s/icon", c.baseURL, url.PathEscape(id))
}

// ElementIconURL returns the icon URL of an element.
func (c *Client) ElementIconURL(element string) string {
	return fmt.Sprintf("%s/elements/%s/icon", c.baseURL, url.PathEscape(strings.ToLower(element)))
}

// Download fetches raw bytes, typically an icon.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	return c.get(ctx, rawURL)
}
