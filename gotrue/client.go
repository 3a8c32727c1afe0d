// Package gotrue talks to the hosted backend's auth service: password sign in,
// session refresh, fetching the current user, sign out and password updates.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/song-ranker-admin/internal/errors"
	"github.com/jrsteele09/song-ranker-admin/users"
	"golang.org/x/oauth2"
)

const (
	authPath   = "/auth/v1"
	tokenPath  = authPath + "/token"
	userPath   = authPath + "/user"
	logoutPath = authPath + "/logout"

	maxErrorBody = 64 << 10
)

// Session is a provider session: the token pair and the user it belongs to.
type Session struct {
	Token *oauth2.Token
	User  *users.User
}

// tokenResponse is the provider's token endpoint payload.
type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	RefreshToken string      `json:"refresh_token"`
	User         *users.User `json:"user"`
}

func (t tokenResponse) session(now time.Time) *Session {
	token := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
	}
	switch {
	case t.ExpiresAt > 0:
		token.Expiry = time.Unix(t.ExpiresAt, 0)
	case t.ExpiresIn > 0:
		token.Expiry = now.Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return &Session{Token: token, User: t.User}
}

// APIError is a non-2xx answer from the auth service. The service has used a
// few error shapes over time; all of them decode into this struct.
type APIError struct {
	Status      int    `json:"-"`
	Code        string `json:"error_code"`
	ErrorName   string `json:"error"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
	Message     string `json:"message"`
}

func (e *APIError) Error() string {
	msg := e.Description
	for _, m := range []string{e.Msg, e.Message} {
		if msg == "" {
			msg = m
		}
	}
	code := e.Code
	if code == "" {
		code = e.ErrorName
	}
	return fmt.Sprintf("auth provider: status %d: %s %s", e.Status, code, msg)
}

// Unwrap maps provider statuses onto the shared sentinel errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusBadRequest && (e.ErrorName == "invalid_grant" || e.Code == "invalid_credentials"):
		return apperrors.ErrInvalidCredentials
	case e.Code == "refresh_token_not_found" || e.Code == "refresh_token_already_used":
		return apperrors.ErrInvalidRefreshToken
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return apperrors.ErrInvalidToken
	case e.Status >= 500:
		return apperrors.ErrProviderUnavailable
	}
	return nil
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

// New creates a client for the project at baseURL (e.g.
// https://song-ranker.supabase.co) using its anon key.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// SignInWithPassword exchanges email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, tokenPath+"?grant_type=password", "", body, &resp); err != nil {
		return nil, fmt.Errorf("[gotrue SignInWithPassword] %w", err)
	}
	return resp.session(c.now()), nil
}

// RefreshSession trades a refresh token for a new token pair. Refresh tokens are
// single use.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	body := map[string]string{"refresh_token": refreshToken}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, tokenPath+"?grant_type=refresh_token", "", body, &resp); err != nil {
		return nil, fmt.Errorf("[gotrue RefreshSession] %w", err)
	}
	return resp.session(c.now()), nil
}

// GetUser returns the user the access token was issued to.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*users.User, error) {
	if accessToken == "" {
		return nil, apperrors.ErrInvalidToken
	}
	var user users.User
	if err := c.do(ctx, http.MethodGet, userPath, accessToken, nil, &user); err != nil {
		return nil, fmt.Errorf("[gotrue GetUser] %w", err)
	}
	if user.ID == "" {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

// SignOut revokes the session the access token belongs to.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	if err := c.do(ctx, http.MethodPost, logoutPath, accessToken, nil, nil); err != nil {
		return fmt.Errorf("[gotrue SignOut] %w", err)
	}
	return nil
}

// UpdatePassword sets a new password for the signed in user.
func (c *Client) UpdatePassword(ctx context.Context, accessToken, password string) (*users.User, error) {
	if accessToken == "" {
		return nil, apperrors.ErrInvalidToken
	}
	var user users.User
	body := map[string]string{"password": password}
	if err := c.do(ctx, http.MethodPut, userPath, accessToken, body, &user); err != nil {
		return nil, fmt.Errorf("[gotrue UpdatePassword] %w", err)
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
