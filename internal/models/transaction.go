package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types accepted by the backend.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// Transaction is a buy or sell of an asset within a portfolio.
type Transaction struct {
	ID              int             `json:"id"`
	PortfolioID     int             `json:"portfolio_id"`
	AssetID         int             `json:"asset_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	TransactionType string          `json:"transaction_type"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty"`
}

// Validate checks that a decoded transaction is usable.
func (t *Transaction) Validate() error {
	if t.PortfolioID <= 0 {
		return fmt.Errorf("transaction: portfolio_id is required")
	}
	if t.AssetID <= 0 {
		return fmt.Errorf("transaction: asset_id is required")
	}
	if t.TransactionType == "" {
		return fmt.Errorf("transaction: transaction_type is required")
	}
	return nil
}

// Value returns quantity × price.
func (t *Transaction) Value() decimal.Decimal {
	return t.Quantity.Mul(t.Price)
}

// TransactionCreate is the request body for recording a transaction.
type TransactionCreate struct {
	PortfolioID     int             `json:"portfolio_id"`
	AssetID         int             `json:"asset_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	TransactionType string          `json:"transaction_type"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty"`
}

// Validate checks required fields before submission.
func (t *TransactionCreate) Validate() error {
	if t.PortfolioID <= 0 {
		return fmt.Errorf("transaction: portfolio_id is required")
	}
	if t.AssetID <= 0 {
		return fmt.Errorf("transaction: asset_id is required")
	}
	if t.Quantity.IsZero() || t.Quantity.IsNegative() {
		return fmt.Errorf("transaction: quantity must be positive")
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("transaction: price must not be negative")
	}
	if t.TransactionType != TransactionBuy && t.TransactionType != TransactionSell {
		return fmt.Errorf("transaction: type must be %q or %q", TransactionBuy, TransactionSell)
	}
	return nil
}
