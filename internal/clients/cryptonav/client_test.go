package cryptonav

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonav/cryptonav/internal/models"
)

func TestLogin_SendsCredentialsAsQuery(t *testing.T) {
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/login", r.URL.Path)
		gotUser = r.URL.Query().Get("username")
		gotPass = r.URL.Query().Get("password")
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok123", "token_type": "bearer"})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	resp, err := client.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)

	assert.Equal(t, "tok123", resp.AccessToken)
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "correct-pw", gotPass)
}

func TestLogin_BadCredentialsMapToAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Login(context.Background(), "alice", "wrong-pw")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Incorrect username or password", apiErr.Message)
	assert.True(t, apiErr.IsUnauthorized())
}

func TestLogin_MalformedResponseFailsLoudly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with no access_token must not produce a usable session.
		json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Login(context.Background(), "alice", "correct-pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token")
}

func TestUnauthorizedHook_NotFiredForLoginFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "nope"})
	}))
	defer srv.Close()

	fired := 0
	client := NewClient(WithBaseURL(srv.URL), WithUnauthorizedHook(func() { fired++ }))

	// 401 on the public login endpoint: bad credentials, not a dead session.
	_, err := client.Login(context.Background(), "alice", "wrong-pw")
	require.Error(t, err)
	assert.Equal(t, 0, fired)

	// 401 on a bearer-authenticated call: the session is dead.
	_, err = client.CurrentUser(context.Background(), "stale")
	require.Error(t, err)
	assert.Equal(t, 1, fired)
}

func TestListAssets_DecodesAndAuthorizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assets/", r.URL.Path)
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		require.Equal(t, "50", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "symbol": "BTC", "name": "Bitcoin"},
			{"id": 2, "symbol": "ETH", "name": "Ethereum", "description": "smart contracts"},
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	assets, err := client.ListAssets(context.Background(), "tok123", 0, 50)
	require.NoError(t, err)

	require.Len(t, assets, 2)
	assert.Equal(t, "BTC", assets[0].Symbol)
	assert.Equal(t, "smart contracts", assets[1].Description)
}

func TestListAssets_MalformedItemRejectedAtBoundary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "name": "missing symbol"},
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.ListAssets(context.Background(), "tok123", 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol")
}

func TestCreateTransaction_ValidatesBeforeSending(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.CreateTransaction(context.Background(), "tok123", &models.TransactionCreate{
		PortfolioID:     1,
		AssetID:         1,
		Quantity:        decimal.NewFromInt(-5),
		Price:           decimal.NewFromInt(100),
		TransactionType: models.TransactionBuy,
	})
	require.Error(t, err)
	assert.False(t, called, "invalid request must not reach the wire")
}

func TestCreateTransaction_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "buy", body["transaction_type"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 7, "portfolio_id": 1, "asset_id": 2,
			"quantity": "0.5", "price": "61000.25", "transaction_type": "buy",
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	tx, err := client.CreateTransaction(context.Background(), "tok123", &models.TransactionCreate{
		PortfolioID:     1,
		AssetID:         2,
		Quantity:        decimal.RequireFromString("0.5"),
		Price:           decimal.RequireFromString("61000.25"),
		TransactionType: models.TransactionBuy,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, tx.ID)
	assert.True(t, tx.Value().Equal(decimal.RequireFromString("30500.125")))
}

func TestListAssetPriceHistory_DateRangeQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pricehistory/asset/3", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("start_date"))
		assert.Empty(t, r.URL.Query().Get("end_date"))
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "asset_id": 3, "date": "2026-08-01T00:00:00Z", "close_price": "64000"},
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	entries, err := client.ListAssetPriceHistory(context.Background(), "tok123", 3, start, time.Time{})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].ClosePrice)
	assert.True(t, entries[0].ClosePrice.Equal(decimal.NewFromInt(64000)))
}

func TestDelete_NoBodyExpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/assets/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	require.NoError(t, client.DeleteAsset(context.Background(), "tok123", 9))
}
