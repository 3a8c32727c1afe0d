package server

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/jrsteele09/song-ranker-admin/dashboard"
)

var (
	_ dashboard.AddressBar = (*browserTab)(nil)
	_ dashboard.Navigator  = (*browserTab)(nil)
	_ dashboard.TabFlags   = (*browserTab)(nil)
)

// browserTab is the browser as reported by the startup script. Effects the
// core asks for are collected and sent back in the startup response.
type browserTab struct {
	fragment string
	path     string
	flags    *sessions.Session

	replaceURL string
	redirect   string
	flagsDirty bool
}

func newBrowserTab(path, fragment string, flags *sessions.Session) *browserTab {
	if path == "" {
		path = dashboard.RouteRoot
	}
	return &browserTab{path: path, fragment: fragment, flags: flags}
}

func (b *browserTab) Fragment() string { return b.fragment }

func (b *browserTab) ReplaceURL(path string) {
	b.replaceURL = path
	b.fragment = ""
}

func (b *browserTab) ReplaceRoute(path string) {
	b.redirect = path
	b.path = path
}

func (b *browserTab) CurrentPath() string { return b.path }

func (b *browserTab) Flag(name string) bool {
	value, _ := b.flags.Values[name].(bool)
	return value
}

func (b *browserTab) SetFlag(name string, value bool) {
	b.flags.Values[name] = value
	b.flagsDirty = true
}

// saveFlags writes the flag cookie when a flag changed.
func (b *browserTab) saveFlags(w http.ResponseWriter, r *http.Request) error {
	if !b.flagsDirty {
		return nil
	}
	return b.flags.Save(r, w)
}
