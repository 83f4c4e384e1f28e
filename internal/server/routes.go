package server

import (
	"net/http"
	"strings"

	"github.com/cryptonav/cryptonav/internal/common"
)

// registerRoutes sets up all routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/signin", s.handleSignIn)
	mux.HandleFunc("/signup", s.handleSignUp)
	mux.HandleFunc("/signout", s.handleSignOut)

	// Dashboard
	mux.HandleFunc("/", s.handleDashboard)

	// Assets
	mux.HandleFunc("/assets", s.handleAssets)
	mux.HandleFunc("/assets/", s.routeAssets)

	// Portfolios
	mux.HandleFunc("/portfolios", s.handlePortfolios)
	mux.HandleFunc("/portfolios/", s.routePortfolios)

	// Transactions
	mux.HandleFunc("/transactions", s.handleTransactions)
	mux.HandleFunc("/transactions/", s.routeTransactions)

	// Price history
	mux.HandleFunc("/pricehistory", s.handlePriceHistory)
	mux.HandleFunc("/pricehistory/chart.png", s.handlePriceChart)
	mux.HandleFunc("/pricehistory/", s.routePriceHistory)
}

// routeAssets dispatches /assets/{id}/{action} to the appropriate handler.
func (s *Server) routeAssets(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/assets/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 {
		http.NotFound(w, r)
		return
	}

	switch parts[1] {
	case "update":
		s.handleAssetUpdate(w, r, parts[0])
	case "delete":
		s.handleAssetDelete(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

// routePortfolios dispatches /portfolios/{id}/{action}.
func (s *Server) routePortfolios(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/portfolios/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 {
		http.NotFound(w, r)
		return
	}

	switch parts[1] {
	case "update":
		s.handlePortfolioUpdate(w, r, parts[0])
	case "delete":
		s.handlePortfolioDelete(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

// routeTransactions dispatches /transactions/{id}/{action}.
func (s *Server) routeTransactions(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/transactions/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 || parts[1] != "delete" {
		http.NotFound(w, r)
		return
	}
	s.handleTransactionDelete(w, r, parts[0])
}

// routePriceHistory dispatches /pricehistory/{id}/{action}.
func (s *Server) routePriceHistory(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/pricehistory/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 || parts[1] != "delete" {
		http.NotFound(w, r)
		return
	}
	s.handlePriceHistoryDelete(w, r, parts[0])
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
