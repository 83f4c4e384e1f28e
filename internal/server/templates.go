package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/cryptonav/cryptonav/internal/common"
)

//go:embed web/templates/*.html
var templatesFS embed.FS

// pageNames are the content templates, each parsed against the shared layout.
var pageNames = []string{
	"signin.html",
	"signup.html",
	"dashboard.html",
	"assets.html",
	"portfolios.html",
	"transactions.html",
	"pricehistory.html",
}

// pageSet holds the parsed template for each page.
type pageSet struct {
	pages map[string]*template.Template
}

// loadPages parses every page template against the shared layout.
func loadPages() (*pageSet, error) {
	ps := &pageSet{pages: make(map[string]*template.Template)}
	for _, name := range pageNames {
		t, err := template.ParseFS(templatesFS, "web/templates/layout.html", "web/templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		ps.pages[name] = t
	}
	return ps, nil
}

// render executes a page template. Template errors after headers are written
// can only be logged.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	t, ok := s.pages.pages[name]
	if !ok {
		s.logger.Error().Str("template", name).Msg("Unknown template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("Template render failed")
	}
}

// basePage carries the fields every page template expects.
type basePage struct {
	Title   string
	Session *common.SessionInfo
	Error   string
}
