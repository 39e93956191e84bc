package impala

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stay-tools/pms-atlas/pkg/services/pms"
)

// client wraps the Impala hotel API: bearer-token GET requests returning
// paged record envelopes.
type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	hotelID    string
}

func newClient(cfg *Config) *client {
	return &client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		hotelID:    cfg.HotelID,
	}
}

func (c *client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/hotel/%s%s", c.baseURL, c.hotelID, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build impala request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("impala request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return pms.DataNotAvailableError(
			fmt.Sprintf("impala responded 404 for %s", path),
			"The data may not be ready yet.")
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("impala request %s returned %d: %s", path, resp.StatusCode, raw)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pms.DataIncompleteError(
			fmt.Sprintf("failed to decode impala response for %s: %v", path, err),
			"The data returned by the property system was not readable.")
	}
	return nil
}
