package server

import (
	"net/http"

	"github.com/cryptonav/cryptonav/internal/models"
)

// dashboardPage is the view model for the home view.
type dashboardPage struct {
	basePage
	User       *models.User
	Portfolios []*models.Portfolio
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	page := dashboardPage{basePage: s.base(r, "Dashboard")}

	user, err := s.app.Sessions.EnsureUser(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load profile for dashboard")
		s.render(w, "dashboard.html", page)
		return
	}
	page.User = user

	// Portfolio summary is best-effort; the welcome renders without it.
	portfolios, err := s.app.APIClient.ListUserPortfolios(r.Context(), page.Session.Token, user.ID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load portfolios for dashboard")
	} else {
		page.Portfolios = portfolios
	}

	s.render(w, "dashboard.html", page)
}
