package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gomoku/communication"
	"gomoku/engine"
)

// Client asks a remote decision server for moves.
type Client struct {
	serverURL string
	http      *http.Client
}

func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      http.DefaultClient,
	}
}

func (c *Client) Decide(ctx context.Context, req engine.Request) (engine.Response, error) {
	failed := engine.Response{Row: -1, Col: -1}

	data, err := json.Marshal(req)
	if err != nil {
		return failed, fmt.Errorf("failed to encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/decide", bytes.NewReader(data))
	if err != nil {
		return failed, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return failed, fmt.Errorf("failed to reach %s: %w", c.serverURL, err)
	}
	defer resp.Body.Close()

	var body communication.DecideResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return failed, fmt.Errorf("failed to decode response (%s): %w", resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK {
		return failed, fmt.Errorf("server rejected request (%s): %s", resp.Status, body.Error)
	}
	return body.Response, nil
}
