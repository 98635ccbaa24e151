// Package authclient talks to the platform's authentication endpoints.
// It normalizes the per-role response shapes into LoginResult/APIError so
// the rest of the client never touches raw wire bodies.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"blxck-client/internal/domain/auth"
	domain "blxck-client/internal/domain/session"
)

// DefaultTimeout bounds every request so no flow can sit in its loading
// state forever on a hung backend.
const DefaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Login runs one parameterized login flow. It returns an *APIError for a
// structured backend rejection and a plain error for transport or
// malformed-response failures.
func (c *Client) Login(ctx context.Context, flow LoginFlow, creds auth.Credentials) (*auth.LoginResult, error) {
	status, body, err := c.postJSON(ctx, flow.Path, creds)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, decodeAPIError(status, body)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed login response: %w", err)
	}

	var token string
	if raw, ok := payload["token"]; ok {
		_ = json.Unmarshal(raw, &token)
	}
	if token == "" {
		return nil, fmt.Errorf("malformed login response: missing token")
	}

	raw, ok := payload[flow.IdentityKey]
	if !ok {
		return nil, fmt.Errorf("malformed login response: missing %q object", flow.IdentityKey)
	}
	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil || len(identity) == 0 {
		return nil, fmt.Errorf("malformed login response: unreadable %q object", flow.IdentityKey)
	}

	c.logger.Debug("login succeeded",
		zap.String("flow", flow.Name),
		zap.String("email", identity.Email()),
	)

	return &auth.LoginResult{Identity: identity, Token: token, Role: flow.Role}, nil
}

// Register runs one parameterized registration flow.
func (c *Client) Register(ctx context.Context, flow RegistrationFlow, reg auth.Registration) (*auth.RegisterResult, error) {
	status, body, err := c.postJSON(ctx, flow.Path, reg)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, decodeAPIError(status, body)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed registration response: %w", err)
	}

	res := &auth.RegisterResult{}
	if raw, ok := payload["message"]; ok {
		_ = json.Unmarshal(raw, &res.Message)
	}
	if raw, ok := payload["token"]; ok {
		_ = json.Unmarshal(raw, &res.Token)
	}
	// Created-resource confirmations may carry the new identity under the
	// role's key, enabling immediate login.
	for _, key := range []string{"trainer", "user"} {
		if raw, ok := payload[key]; ok {
			_ = json.Unmarshal(raw, &res.Identity)
			break
		}
	}
	return res, nil
}

// Me fetches the profile behind a bearer token. Used to validate a stored
// session against the backend.
func (c *Client) Me(ctx context.Context, token string) (domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, body)
	}

	var identity domain.Identity
	if err := json.Unmarshal(body, &identity); err != nil {
		return nil, fmt.Errorf("malformed profile response: %w", err)
	}
	return identity, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
