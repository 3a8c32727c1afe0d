// Package postgrest reads member profiles through the hosted backend's REST API.
// Requests carry the signed-in user's access token so row level security
// applies; without one the anon key is used.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/song-ranker-admin/members"
)

const (
	membersPath  = "/rest/v1/members"
	memberSelect = "*,themes(*)"
)

var _ members.Repo = (*Repo)(nil)

type accessTokenKey struct{}

// WithAccessToken attaches the caller's access token to ctx.
func WithAccessToken(ctx context.Context, accessToken string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, accessToken)
}

func accessTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

// Error is a non-2xx answer from the REST API.
type Error struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("postgrest: status %d", e.Status)
	}
	return fmt.Sprintf("postgrest: status %d: %s %s", e.Status, e.Code, e.Message)
}

type Repo struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRepo creates a member repository for the project at baseURL
// (e.g. https://song-ranker.supabase.co).
func NewRepo(baseURL, apiKey string, httpClient *http.Client) *Repo {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Repo{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (r *Repo) GetByUserID(ctx context.Context, userID string) (*members.Member, error) {
	return r.getOne(ctx, "member_id", userID)
}

func (r *Repo) GetByMusicID(ctx context.Context, musicID string) (*members.Member, error) {
	return r.getOne(ctx, "music_id", musicID)
}

func (r *Repo) Create(ctx context.Context, member *members.Member) (*members.Member, error) {
	if member == nil || member.MemberID == "" {
		return nil, fmt.Errorf("[postgrest Create] member id is required")
	}

	body, err := json.Marshal(struct {
		MemberID    string  `json:"member_id"`
		MusicID     string  `json:"music_id,omitempty"`
		DisplayName string  `json:"display_name,omitempty"`
		ThemeID     *string `json:"theme_id,omitempty"`
	}{member.MemberID, member.MusicID, member.DisplayName, member.ThemeID})
	if err != nil {
		return nil, fmt.Errorf("[postgrest Create] encode member: %w", err)
	}

	query := url.Values{"select": {memberSelect}}
	req, err := r.newRequest(ctx, http.MethodPost, query, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	rows, err := r.do(req)
	if err != nil {
		return nil, fmt.Errorf("[postgrest Create] %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("[postgrest Create] no row returned")
	}
	return &rows[0], nil
}

func (r *Repo) getOne(ctx context.Context, column, value string) (*members.Member, error) {
	if value == "" {
		return nil, members.ErrNotFound
	}

	query := url.Values{
		"select": {memberSelect},
		column:   {"eq." + value},
		"limit":  {"1"},
	}
	req, err := r.newRequest(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, err
	}

	rows, err := r.do(req)
	if err != nil {
		return nil, fmt.Errorf("[postgrest get %s] %w", column, err)
	}
	if len(rows) == 0 {
		return nil, members.ErrNotFound
	}
	return &rows[0], nil
}

func (r *Repo) newRequest(ctx context.Context, method string, query url.Values, body io.Reader) (*http.Request, error) {
	endpoint := r.baseURL + membersPath + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("[postgrest] build request: %w", err)
	}

	bearer := accessTokenFrom(ctx)
	if bearer == "" {
		bearer = r.apiKey
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (r *Repo) do(req *http.Request) ([]members.Member, error) {
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(apiErr)
		return nil, apiErr
	}

	var rows []members.Member
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return rows, nil
}
