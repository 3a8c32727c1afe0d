package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/song-ranker-admin/gotrue"
	"github.com/jrsteele09/song-ranker-admin/internal/config"
	apperrors "github.com/jrsteele09/song-ranker-admin/internal/errors"
	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/jrsteele09/song-ranker-admin/members/repofake"
	"github.com/jrsteele09/song-ranker-admin/server/loginsession"
	"github.com/jrsteele09/song-ranker-admin/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	testEmail    = "jo@example.com"
	testPassword = "correct horse"
)

// fakeAuth stands in for the hosted auth service.
type fakeAuth struct {
	mu          sync.Mutex
	user        *users.User
	tokenUsers  map[string]*users.User // users of tokens not issued by sign in
	refreshErr  error
	signIns     int
	refreshes   int
	signOuts    int
	userCalls   int
	newPassword string
	issued      int
}

func (f *fakeAuth) token() *oauth2.Token {
	f.issued++
	return &oauth2.Token{
		AccessToken:  fmt.Sprintf("access-%d", f.issued),
		RefreshToken: fmt.Sprintf("refresh-%d", f.issued),
		TokenType:    "bearer",
		Expiry:       time.Now().Add(time.Hour),
	}
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, password string) (*gotrue.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns++
	if email != testEmail || password != testPassword {
		return nil, fmt.Errorf("sign in: %w", apperrors.ErrInvalidCredentials)
	}
	return &gotrue.Session{Token: f.token(), User: f.user}, nil
}

func (f *fakeAuth) RefreshSession(_ context.Context, refreshToken string) (*gotrue.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	if refreshToken == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	return &gotrue.Session{Token: f.token(), User: f.user}, nil
}

func (f *fakeAuth) GetUser(_ context.Context, accessToken string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userCalls++
	if accessToken == "" {
		return nil, apperrors.ErrInvalidToken
	}
	if user, ok := f.tokenUsers[accessToken]; ok {
		return user, nil
	}
	return f.user, nil
}

func (f *fakeAuth) userForToken(accessToken string, user *users.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tokenUsers == nil {
		f.tokenUsers = map[string]*users.User{}
	}
	f.tokenUsers[accessToken] = user
}

func (f *fakeAuth) SignOut(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts++
	return nil
}

func (f *fakeAuth) UpdatePassword(_ context.Context, _ string, password string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newPassword = password
	return f.user, nil
}

func (f *fakeAuth) failRefresh(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshErr = err
}

func (f *fakeAuth) counts() (signIns, refreshes, signOuts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signIns, f.refreshes, f.signOuts
}

func (f *fakeAuth) updatedPassword() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.newPassword
}

// fakeVerifier accepts every token except the ones it has errors for.
type fakeVerifier struct {
	mu     sync.Mutex
	errors map[string]error
}

func (v *fakeVerifier) fail(token string, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors[token] = err
}

func (v *fakeVerifier) Verify(_ context.Context, rawToken string) (*gotrue.Claims, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err, ok := v.errors[rawToken]; ok {
		return nil, err
	}
	return &gotrue.Claims{Subject: "U1", Expiry: time.Now().Add(time.Hour)}, nil
}

// countingRepo counts profile reads.
type countingRepo struct {
	*repofake.FakeMemberRepo
	mu    sync.Mutex
	reads int
}

func (c *countingRepo) GetByUserID(ctx context.Context, userID string) (*members.Member, error) {
	c.mu.Lock()
	c.reads++
	c.mu.Unlock()
	return c.FakeMemberRepo.GetByUserID(ctx, userID)
}

func (c *countingRepo) readCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

type testEnv struct {
	server   *Server
	http     *httptest.Server
	client   *http.Client
	auth     *fakeAuth
	verifier *fakeVerifier
	members  *countingRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("ENV", "TEST")
	t.Setenv("APP_NAME", "Song Ranker")
	t.Setenv("SUPABASE_URL", "http://provider.invalid")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("SESSION_SECRET", "test-session-secret")
	t.Setenv("BASE_URL", "http://localhost")
	t.Setenv("REMOTE_TIMEOUT", "2s")

	env := &testEnv{
		auth:     &fakeAuth{user: &users.User{ID: "U1", Email: testEmail}},
		verifier: &fakeVerifier{errors: map[string]error{}},
		members:  &countingRepo{FakeMemberRepo: repofake.NewFakeMemberRepo()},
	}

	s, err := New(config.New(), Services{
		Auth:          env.auth,
		Verifier:      env.verifier,
		Members:       env.members,
		LoginSessions: loginsession.NewInMemoryLoginSessionRepo(),
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	env.server = s
	env.http = httptest.NewServer(s)
	t.Cleanup(env.http.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	env.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return env
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := e.client.Get(e.http.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := e.client.PostForm(e.http.URL+path, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) startup(t *testing.T, path, fragment string) startupResponse {
	t.Helper()
	body, err := json.Marshal(startupRequest{Path: path, Fragment: fragment})
	require.NoError(t, err)

	resp, err := e.client.Post(e.http.URL+RouteAPIStartup, "application/json", strings.NewReader(string(body)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out startupResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) signIn(t *testing.T) *http.Response {
	t.Helper()
	return e.postForm(t, RouteSignIn, url.Values{"email": {testEmail}, "password": {testPassword}})
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func requireRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, location, resp.Header.Get("Location"))
}
