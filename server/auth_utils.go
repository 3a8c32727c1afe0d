package server

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	apperrors "github.com/jrsteele09/song-ranker-admin/internal/errors"
	"github.com/jrsteele09/song-ranker-admin/server/loginsession"
	"golang.org/x/crypto/hkdf"
)

const (
	// loggedInSessionName is the cookie carrying the dashboard session id
	loggedInSessionName = "songranker_session"
	// tabSessionName is the cookie holding tab scoped flags; it has no Max-Age
	// so the browser drops it when the browsing session ends
	tabSessionName = "songranker_tab"

	sessionIDKey = "sid"

	hashKeyLength  = 64
	blockKeyLength = 32
)

// newCookieStore derives independent signing and encryption keys from the
// configured secret.
func newCookieStore(secret, baseURL string, maxAge time.Duration) (*sessions.CookieStore, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}

	keys := hkdf.New(sha256.New, []byte(secret), nil, []byte("songranker cookie keys"))
	hashKey := make([]byte, hashKeyLength)
	blockKey := make([]byte, blockKeyLength)
	if _, err := io.ReadFull(keys, hashKey); err != nil {
		return nil, fmt.Errorf("derive hash key: %w", err)
	}
	if _, err := io.ReadFull(keys, blockKey); err != nil {
		return nil, fmt.Errorf("derive block key: %w", err)
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   strings.HasPrefix(baseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(maxAge.Seconds()))
	return store, nil
}

// loginSession returns the dashboard session of the browser, creating one
// when the cookie is missing, unreadable or points at a forgotten entry.
func (s *Server) loginSession(w http.ResponseWriter, r *http.Request) (string, *loginsession.Entry, error) {
	cookie, err := s.cookies.Get(r, loggedInSessionName)
	if err != nil && cookie == nil {
		return "", nil, fmt.Errorf("read session cookie: %w", err)
	}

	if sid, ok := cookie.Values[sessionIDKey].(string); ok && sid != "" {
		entry, err := s.loginSessions.Get(sid)
		if err == nil {
			return sid, entry, nil
		}
		if !errors.Is(err, apperrors.ErrSessionNotFound) {
			return "", nil, fmt.Errorf("load session: %w", err)
		}
	}

	sid := uuid.NewString()
	entry := loginsession.NewEntry(s.now())
	if err := s.loginSessions.Upsert(sid, entry); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	cookie.Values[sessionIDKey] = sid
	cookie.Options.Secure = cookie.Options.Secure || getScheme(r) == "https"
	if err := cookie.Save(r, w); err != nil {
		return "", nil, fmt.Errorf("write session cookie: %w", err)
	}
	return sid, entry, nil
}

// endLoginSession forgets the browser's dashboard session and expires its cookie.
func (s *Server) endLoginSession(w http.ResponseWriter, r *http.Request, sid string) error {
	if sid != "" {
		if err := s.loginSessions.Delete(sid); err != nil {
			return err
		}
	}
	cookie, _ := s.cookies.Get(r, loggedInSessionName)
	cookie.Options.MaxAge = -1
	return cookie.Save(r, w)
}

// tabSession returns the browser-session scoped cookie.
func (s *Server) tabSession(r *http.Request) *sessions.Session {
	tab, _ := s.cookies.Get(r, tabSessionName) // a tampered cookie yields a fresh session
	tab.Options.MaxAge = 0
	return tab
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	fullPath := path + "?error=" + url.QueryEscape(errorMsg)

	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", fullPath)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, fullPath, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
