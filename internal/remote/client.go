// Package remote mirrors the local store to a JSON-bin style service.
// Replication is best-effort: local writes always happen first and every
// remote failure is swallowed at this boundary by the callers.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// Client talks to a bin service with a REST contract of three calls:
// POST {base} creates a bin, GET {base}/{id}/latest fetches the current
// snapshot, PUT {base}/{id} replaces it.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a bin service client. When accessToken is non-empty the
// client authenticates with a bearer token.
func NewClient(ctx context.Context, baseURL, accessToken string) *Client {
	httpClient := http.DefaultClient
	if accessToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// createResponse is the bin service reply to a create call.
type createResponse struct {
	Metadata struct {
		ID string `json:"id"`
	} `json:"metadata"`
}

// fetchResponse wraps the stored snapshot.
type fetchResponse struct {
	Record Snapshot `json:"record"`
}

// Create stores an initial snapshot in a new bin and returns the bin ID.
func (c *Client) Create(ctx context.Context, snap Snapshot) (string, error) {
	body, err := c.do(ctx, http.MethodPost, c.baseURL, snap)
	if err != nil {
		return "", err
	}
	var resp createResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding create response: %w", err)
	}
	if resp.Metadata.ID == "" {
		return "", fmt.Errorf("bin service returned no bin id")
	}
	return resp.Metadata.ID, nil
}

// FetchLatest returns the current snapshot stored in the bin.
func (c *Client) FetchLatest(ctx context.Context, binID string) (Snapshot, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/"+binID+"/latest", nil)
	if err != nil {
		return Snapshot{}, err
	}
	var resp fetchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Snapshot{}, fmt.Errorf("decoding fetch response: %w", err)
	}
	return resp.Record, nil
}

// Replace overwrites the bin contents with the given snapshot.
func (c *Client) Replace(ctx context.Context, binID string, snap Snapshot) error {
	_, err := c.do(ctx, http.MethodPut, c.baseURL+"/"+binID, snap)
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bin service request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bin service error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
