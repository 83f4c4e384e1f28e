package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cryptonav/cryptonav/internal/models"
)

// portfoliosPage is the view model for the portfolios view.
type portfoliosPage struct {
	basePage
	Portfolios []*models.Portfolio
	FormError  string
}

// buildPortfoliosPage fetches the signed-in user's portfolios.
func (s *Server) buildPortfoliosPage(r *http.Request, formError string) portfoliosPage {
	page := portfoliosPage{basePage: s.base(r, "Portfolios"), FormError: formError}

	user, err := s.app.Sessions.EnsureUser(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load profile for portfolios")
		page.Error = "Unable to load portfolios"
		return page
	}

	portfolios, err := s.app.APIClient.ListUserPortfolios(r.Context(), page.Session.Token, user.ID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load portfolios")
		page.Error = "Unable to load portfolios"
		return page
	}
	page.Portfolios = portfolios
	return page
}

func (s *Server) handlePortfolios(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		s.render(w, "portfolios.html", s.buildPortfoliosPage(r, ""))
		return
	}

	// Create
	if err := r.ParseForm(); err != nil {
		s.render(w, "portfolios.html", s.buildPortfoliosPage(r, "Invalid form submission"))
		return
	}

	user, err := s.app.Sessions.EnsureUser(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to resolve user for portfolio create")
		s.render(w, "portfolios.html", s.buildPortfoliosPage(r, "Unable to add portfolio"))
		return
	}

	req := &models.PortfolioCreate{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		UserID:      user.ID,
	}

	token := s.base(r, "").Session.Token
	if _, err := s.app.APIClient.CreatePortfolio(r.Context(), token, req); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to create portfolio")
		s.render(w, "portfolios.html", s.buildPortfoliosPage(r, "Unable to add portfolio: "+err.Error()))
		return
	}

	http.Redirect(w, r, "/portfolios", http.StatusSeeOther)
}

func (s *Server) handlePortfolioUpdate(w http.ResponseWriter, r *http.Request, idStr string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.render(w, "portfolios.html", s.buildPortfoliosPage(r, "Invalid form submission"))
		return
	}

	user, err := s.app.Sessions.EnsureUser(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to resolve user for portfolio update")
		s.render(w, "portfolios.html", s.buildPortfoliosPage(r, "Unable to update portfolio"))
		return
	}

	req := &models.PortfolioCreate{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		UserID:      user.ID,
	}

	token := s.base(r, "").Session.Token
	if _, err := s.app.APIClient.UpdatePortfolio(r.Context(), token, id, req); err != nil {
		s.logger.Warn().Err(err).Int("portfolio_id", id).Msg("Failed to update portfolio")
		s.render(w, "portfolios.html", s.buildPortfoliosPage(r, "Unable to update portfolio: "+err.Error()))
		return
	}

	http.Redirect(w, r, "/portfolios", http.StatusSeeOther)
}

func (s *Server) handlePortfolioDelete(w http.ResponseWriter, r *http.Request, idStr string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	token := s.base(r, "").Session.Token
	if err := s.app.APIClient.DeletePortfolio(r.Context(), token, id); err != nil {
		s.logger.Warn().Err(err).Int("portfolio_id", id).Msg("Failed to delete portfolio")
		s.render(w, "portfolios.html", s.buildPortfoliosPage(r, "Unable to delete portfolio"))
		return
	}

	http.Redirect(w, r, "/portfolios", http.StatusSeeOther)
}
