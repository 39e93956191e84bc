package mews

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stay-tools/pms-atlas/pkg/services/pms"
)

// client speaks the Mews connector protocol: every operation is a JSON
// POST carrying the client and access tokens in the body.
type client struct {
	httpClient *http.Client
	baseURL    string
	auth       authFields
}

type authFields struct {
	ClientToken string `json:"ClientToken"`
	AccessToken string `json:"AccessToken"`
}

func newClient(cfg *Config) *client {
	return &client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		auth:       authFields{ClientToken: cfg.ClientToken, AccessToken: cfg.AccessToken},
	}
}

func (c *client) post(ctx context.Context, path string, body map[string]any, out any) error {
	payload := map[string]any{
		"ClientToken": c.auth.ClientToken,
		"AccessToken": c.auth.AccessToken,
	}
	for k, v := range body {
		payload[k] = v
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode mews request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build mews request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mews request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return pms.DataNotAvailableError(
			fmt.Sprintf("mews responded 404 for %s", path),
			"The data may not be ready yet.")
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mews request %s returned %d: %s", path, resp.StatusCode, raw)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pms.DataIncompleteError(
			fmt.Sprintf("failed to decode mews response for %s: %v", path, err),
			"The data returned by the property system was not readable.")
	}
	return nil
}
