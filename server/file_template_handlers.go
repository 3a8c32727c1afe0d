package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/jrsteele09/song-ranker-admin/users"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	layoutTemplate  = "layout.html"
)

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a page together with the shared layout.
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(layoutTemplate).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

// mustParseTemplate is for handler constructors, which run once at startup.
func mustParseTemplate(name string) *template.Template {
	tmpl, err := ParseTemplate(name)
	if err != nil {
		panic("Failed to parse " + name + " template: " + err.Error())
	}
	return tmpl
}

// PageData is the model every page is rendered with.
type PageData struct {
	AppName     string
	Title       string
	Error       string
	Notice      string
	Email       string
	User        *users.User
	Member      *members.Member
	Theme       *members.Theme
	ThemeSource dashboard.ThemeSource
	Viewed      *members.Member // Member whose tables or artist are shown
	ArtistID    string
}

// pageData fills the common fields from the request's dashboard state.
func (s *Server) pageData(r *http.Request, title string) PageData {
	data := PageData{
		AppName: s.config.GetAppName(),
		Title:   title,
		Error:   r.URL.Query().Get("error"),
		Notice:  r.URL.Query().Get("notice"),
	}
	if state := stateFrom(r.Context()); state != nil {
		snap := state.Snapshot()
		data.User = snap.User
		data.Member = snap.Member
		data.Theme = snap.Theme
		data.ThemeSource = snap.ThemeSource
	}
	return data
}

func render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, data PageData) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		log.Ctx(r.Context()).Err(err).Str("template", tmpl.Name()).Msg("Failed to render template")
	}
}
