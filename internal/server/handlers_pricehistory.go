package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptonav/cryptonav/internal/models"
)

// priceHistoryPage is the view model for the price history view.
type priceHistoryPage struct {
	basePage
	Assets    []*models.Asset
	Selected  int
	Start     string
	End       string
	Entries   []*models.PriceHistoryEntry
	ShowChart bool
	FormError string
}

// buildPriceHistoryPage fetches assets and the price records of the selected
// asset. selected <= 0 means "first asset".
func (s *Server) buildPriceHistoryPage(r *http.Request, selected int, start, end string, formError string) priceHistoryPage {
	page := priceHistoryPage{
		basePage:  s.base(r, "Price History"),
		Start:     start,
		End:       end,
		FormError: formError,
	}
	token := page.Session.Token

	assets, err := s.app.APIClient.ListAssets(r.Context(), token, 0, 100)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load assets for price history")
		page.Error = "Unable to load price history"
		return page
	}
	page.Assets = assets

	if selected <= 0 && len(assets) > 0 {
		selected = assets[0].ID
	}
	page.Selected = selected
	if selected <= 0 {
		return page
	}

	startTime, endTime, err := parseDateRange(start, end)
	if err != nil {
		page.FormError = err.Error()
		return page
	}

	entries, err := s.app.APIClient.ListAssetPriceHistory(r.Context(), token, selected, startTime, endTime)
	if err != nil {
		s.logger.Warn().Err(err).Int("asset_id", selected).Msg("Failed to load price history")
		page.Error = "Unable to load price history"
		return page
	}
	page.Entries = entries
	page.ShowChart = len(chartPoints(entries)) >= 2
	return page
}

// parseDateRange parses optional YYYY-MM-DD bounds; empty means unbounded.
func parseDateRange(start, end string) (time.Time, time.Time, error) {
	var startTime, endTime time.Time
	var err error
	if start != "" {
		if startTime, err = time.Parse("2006-01-02", start); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("Start date must be YYYY-MM-DD")
		}
	}
	if end != "" {
		if endTime, err = time.Parse("2006-01-02", end); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("End date must be YYYY-MM-DD")
		}
	}
	return startTime, endTime, nil
}

func (s *Server) handlePriceHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		q := r.URL.Query()
		selected, _ := strconv.Atoi(q.Get("asset_id"))
		s.render(w, "pricehistory.html", s.buildPriceHistoryPage(r, selected, q.Get("start_date"), q.Get("end_date"), ""))
		return
	}

	// Create
	if err := r.ParseForm(); err != nil {
		s.render(w, "pricehistory.html", s.buildPriceHistoryPage(r, 0, "", "", "Invalid form submission"))
		return
	}

	assetID, _ := strconv.Atoi(r.PostFormValue("asset_id"))

	req, err := parsePriceHistoryForm(r, assetID)
	if err != nil {
		s.render(w, "pricehistory.html", s.buildPriceHistoryPage(r, assetID, "", "", err.Error()))
		return
	}

	token := s.base(r, "").Session.Token
	if _, err := s.app.APIClient.CreatePriceHistory(r.Context(), token, req); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to create price history entry")
		s.render(w, "pricehistory.html", s.buildPriceHistoryPage(r, assetID, "", "", "Unable to add entry: "+err.Error()))
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/pricehistory?asset_id=%d", assetID), http.StatusSeeOther)
}

// parsePriceHistoryForm converts posted fields into a create request. Price
// fields are optional; blank inputs are omitted.
func parsePriceHistoryForm(r *http.Request, assetID int) (*models.PriceHistoryCreate, error) {
	raw := r.PostFormValue("date")
	if raw == "" {
		return nil, fmt.Errorf("Date is required")
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("Date must be YYYY-MM-DD")
	}

	req := &models.PriceHistoryCreate{AssetID: assetID, Date: date}

	fields := []struct {
		name string
		dest **decimal.Decimal
	}{
		{"open_price", &req.OpenPrice},
		{"high_price", &req.HighPrice},
		{"low_price", &req.LowPrice},
		{"close_price", &req.ClosePrice},
	}
	for _, f := range fields {
		val := r.PostFormValue(f.name)
		if val == "" {
			continue
		}
		d, err := decimal.NewFromString(val)
		if err != nil {
			return nil, fmt.Errorf("Prices must be numbers")
		}
		*f.dest = &d
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Server) handlePriceHistoryDelete(w http.ResponseWriter, r *http.Request, idStr string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	assetID, _ := strconv.Atoi(r.PostFormValue("asset_id"))

	token := s.base(r, "").Session.Token
	if err := s.app.APIClient.DeletePriceHistory(r.Context(), token, id); err != nil {
		s.logger.Warn().Err(err).Int("entry_id", id).Msg("Failed to delete price history entry")
		s.render(w, "pricehistory.html", s.buildPriceHistoryPage(r, assetID, "", "", "Unable to delete entry"))
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/pricehistory?asset_id=%d", assetID), http.StatusSeeOther)
}
