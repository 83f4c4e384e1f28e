package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptonav/cryptonav/internal/models"
)

// transactionsPage is the view model for the transactions view.
type transactionsPage struct {
	basePage
	Portfolios   []*models.Portfolio
	Assets       []*models.Asset
	Selected     int
	Transactions []*models.Transaction
	FormError    string
}

// buildTransactionsPage fetches portfolios, assets, and the transactions of
// the selected portfolio. selected <= 0 means "first portfolio".
func (s *Server) buildTransactionsPage(r *http.Request, selected int, formError string) transactionsPage {
	page := transactionsPage{basePage: s.base(r, "Transactions"), FormError: formError}
	token := page.Session.Token

	user, err := s.app.Sessions.EnsureUser(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load profile for transactions")
		page.Error = "Unable to load transactions"
		return page
	}

	portfolios, err := s.app.APIClient.ListUserPortfolios(r.Context(), token, user.ID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load portfolios for transactions")
		page.Error = "Unable to load transactions"
		return page
	}
	page.Portfolios = portfolios

	if assets, err := s.app.APIClient.ListAssets(r.Context(), token, 0, 100); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load assets for transaction form")
	} else {
		page.Assets = assets
	}

	if selected <= 0 && len(portfolios) > 0 {
		selected = portfolios[0].ID
	}
	page.Selected = selected
	if selected <= 0 {
		return page
	}

	transactions, err := s.app.APIClient.ListPortfolioTransactions(r.Context(), token, selected)
	if err != nil {
		s.logger.Warn().Err(err).Int("portfolio_id", selected).Msg("Failed to load transactions")
		page.Error = "Unable to load transactions"
		return page
	}
	page.Transactions = transactions
	return page
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		selected, _ := strconv.Atoi(r.URL.Query().Get("portfolio_id"))
		s.render(w, "transactions.html", s.buildTransactionsPage(r, selected, ""))
		return
	}

	// Create
	if err := r.ParseForm(); err != nil {
		s.render(w, "transactions.html", s.buildTransactionsPage(r, 0, "Invalid form submission"))
		return
	}

	portfolioID, _ := strconv.Atoi(r.PostFormValue("portfolio_id"))
	assetID, _ := strconv.Atoi(r.PostFormValue("asset_id"))

	req, err := parseTransactionForm(r, portfolioID, assetID)
	if err != nil {
		s.render(w, "transactions.html", s.buildTransactionsPage(r, portfolioID, err.Error()))
		return
	}

	token := s.base(r, "").Session.Token
	if _, err := s.app.APIClient.CreateTransaction(r.Context(), token, req); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to create transaction")
		s.render(w, "transactions.html", s.buildTransactionsPage(r, portfolioID, "Unable to add transaction: "+err.Error()))
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/transactions?portfolio_id=%d", portfolioID), http.StatusSeeOther)
}

// parseTransactionForm converts the posted fields into a create request.
func parseTransactionForm(r *http.Request, portfolioID, assetID int) (*models.TransactionCreate, error) {
	quantity, err := decimal.NewFromString(r.PostFormValue("quantity"))
	if err != nil {
		return nil, fmt.Errorf("Quantity must be a number")
	}
	price, err := decimal.NewFromString(r.PostFormValue("price"))
	if err != nil {
		return nil, fmt.Errorf("Price must be a number")
	}

	req := &models.TransactionCreate{
		PortfolioID:     portfolioID,
		AssetID:         assetID,
		Quantity:        quantity,
		Price:           price,
		TransactionType: r.PostFormValue("transaction_type"),
	}

	if raw := r.PostFormValue("transaction_date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("Date must be YYYY-MM-DD")
		}
		req.TransactionDate = &date
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request, idStr string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	portfolioID, _ := strconv.Atoi(r.PostFormValue("portfolio_id"))

	token := s.base(r, "").Session.Token
	if err := s.app.APIClient.DeleteTransaction(r.Context(), token, id); err != nil {
		s.logger.Warn().Err(err).Int("transaction_id", id).Msg("Failed to delete transaction")
		s.render(w, "transactions.html", s.buildTransactionsPage(r, portfolioID, "Unable to delete transaction"))
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/transactions?portfolio_id=%d", portfolioID), http.StatusSeeOther)
}
