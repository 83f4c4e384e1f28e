package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cryptonav/cryptonav/internal/models"
)

// assetsPage is the view model for the assets view.
type assetsPage struct {
	basePage
	Assets    []*models.Asset
	FormError string
}

// buildAssetsPage fetches the asset list; a fetch failure becomes the
// page-level error banner.
func (s *Server) buildAssetsPage(r *http.Request, formError string) assetsPage {
	page := assetsPage{basePage: s.base(r, "Assets"), FormError: formError}

	assets, err := s.app.APIClient.ListAssets(r.Context(), page.Session.Token, 0, 100)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load assets")
		page.Error = "Unable to load assets"
		return page
	}
	page.Assets = assets
	return page
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		s.render(w, "assets.html", s.buildAssetsPage(r, ""))
		return
	}

	// Create
	if err := r.ParseForm(); err != nil {
		s.render(w, "assets.html", s.buildAssetsPage(r, "Invalid form submission"))
		return
	}

	req := &models.AssetCreate{
		Symbol:      strings.TrimSpace(r.PostFormValue("symbol")),
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}

	token := s.base(r, "").Session.Token
	if _, err := s.app.APIClient.CreateAsset(r.Context(), token, req); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to create asset")
		s.render(w, "assets.html", s.buildAssetsPage(r, "Unable to add asset: "+err.Error()))
		return
	}

	http.Redirect(w, r, "/assets", http.StatusSeeOther)
}

func (s *Server) handleAssetUpdate(w http.ResponseWriter, r *http.Request, idStr string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.render(w, "assets.html", s.buildAssetsPage(r, "Invalid form submission"))
		return
	}

	req := &models.AssetCreate{
		Symbol:      strings.TrimSpace(r.PostFormValue("symbol")),
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}

	token := s.base(r, "").Session.Token
	if _, err := s.app.APIClient.UpdateAsset(r.Context(), token, id, req); err != nil {
		s.logger.Warn().Err(err).Int("asset_id", id).Msg("Failed to update asset")
		s.render(w, "assets.html", s.buildAssetsPage(r, "Unable to update asset: "+err.Error()))
		return
	}

	http.Redirect(w, r, "/assets", http.StatusSeeOther)
}

func (s *Server) handleAssetDelete(w http.ResponseWriter, r *http.Request, idStr string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	token := s.base(r, "").Session.Token
	if err := s.app.APIClient.DeleteAsset(r.Context(), token, id); err != nil {
		s.logger.Warn().Err(err).Int("asset_id", id).Msg("Failed to delete asset")
		s.render(w, "assets.html", s.buildAssetsPage(r, "Unable to delete asset"))
		return
	}

	http.Redirect(w, r, "/assets", http.StatusSeeOther)
}
