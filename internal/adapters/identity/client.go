// Package identity is the event service's HTTP client for the identity service.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventrewards/internal/domain"
)

// ServiceSubject is the subject of the service tokens the client presents.
const ServiceSubject = "event-service"

const serviceTokenTTL = time.Minute

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type httpGateway struct {
	baseURL string
	client  *http.Client
	tokens  domain.TokenIssuer
}

// NewHTTPGateway returns an IdentityGateway that calls the identity service at baseURL.
// The client's Timeout bounds every call; an elapsed timeout is reported as ErrIdentityUnavailable.
func NewHTTPGateway(baseURL string, client *http.Client, tokens domain.TokenIssuer) domain.IdentityGateway {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &httpGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
	}
}

func (g *httpGateway) FetchStats(ctx context.Context, userID string) (*domain.UserAchievementStats, error) {
	var stats domain.UserAchievementStats
	if err := g.do(ctx, http.MethodGet, "/stats", userID, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (g *httpGateway) ApplyCredit(ctx context.Context, userID string, credit domain.Credit) error {
	return g.do(ctx, http.MethodPost, "/credits", userID, credit, nil)
}

func (g *httpGateway) do(ctx context.Context, method, suffix, userID string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode identity request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	endpoint := g.baseURL + "/internal/users/" + url.PathEscape(userID) + suffix
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := g.tokens.Issue(ServiceSubject, domain.RoleService, serviceTokenTTL)
	if err != nil {
		return fmt.Errorf("issue service token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIdentityUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrUserNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && env.Error != nil {
			msg = env.Error.Message
		}
		return fmt.Errorf("%w: identity service returned %d: %s", domain.ErrIdentityUnavailable, resp.StatusCode, msg)
	case decodeErr != nil:
		return fmt.Errorf("%w: decode identity response: %w", domain.ErrIdentityUnavailable, decodeErr)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode identity payload: %w", domain.ErrIdentityUnavailable, err)
	}
	return nil
}
