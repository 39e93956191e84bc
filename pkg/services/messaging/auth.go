package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

type tokenState int

const (
	tokenNone tokenState = iota
	tokenValid
	tokenExpired
)

// expiryLeeway is subtracted from the granted lifetime so a token close to
// expiry is refreshed before the channel starts rejecting it.
const expiryLeeway = 30 * time.Second

// TokenSource caches one process-wide OAuth client-credentials token for
// the messaging channel. Many requests read the cached token; a refresh
// only happens when the expiry check says the token is gone, under a lock,
// so concurrent 401s cannot stampede the auth endpoint.
type TokenSource struct {
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string

	mu        sync.Mutex
	state     tokenState
	token     string
	expiresAt time.Time

	now func() time.Time
}

func NewTokenSource(baseURL, clientID, clientSecret string) *TokenSource {
	return &TokenSource{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		tokenURL:     baseURL + "/oauth/token",
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// Token returns the cached access token, fetching a fresh one when none is
// held or the held one has expired.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == tokenValid && s.now().Before(s.expiresAt.Add(-expiryLeeway)) {
		return s.token, nil
	}

	if err := s.fetch(ctx); err != nil {
		s.state = tokenNone
		return "", err
	}
	return s.token, nil
}

// Invalidate marks the cached token expired so the next Token call
// re-authenticates. Called when the channel answers 401.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = tokenExpired
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (s *TokenSource) fetch(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.clientID)
	form.Set("client_secret", s.clientSecret)
	form.Set("scope", "bot")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("token request returned %d: %s", resp.StatusCode, raw)
	}

	var granted tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&granted); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}

	s.token = granted.AccessToken
	s.expiresAt = s.now().Add(time.Duration(granted.ExpiresIn) * time.Second)
	s.state = tokenValid
	return nil
}
