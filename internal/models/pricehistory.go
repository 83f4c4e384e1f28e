package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistoryEntry is one OHLC record for an asset on a date.
// Individual prices are optional on the wire; the backend stores whatever
// subset was recorded.
type PriceHistoryEntry struct {
	ID         int              `json:"id"`
	AssetID    int              `json:"asset_id"`
	Date       time.Time        `json:"date"`
	OpenPrice  *decimal.Decimal `json:"open_price,omitempty"`
	ClosePrice *decimal.Decimal `json:"close_price,omitempty"`
	HighPrice  *decimal.Decimal `json:"high_price,omitempty"`
	LowPrice   *decimal.Decimal `json:"low_price,omitempty"`
}

// Validate checks that a decoded entry is usable.
func (p *PriceHistoryEntry) Validate() error {
	if p.AssetID <= 0 {
		return fmt.Errorf("price history: asset_id is required")
	}
	if p.Date.IsZero() {
		return fmt.Errorf("price history: date is required")
	}
	return nil
}

// PriceHistoryCreate is the request body for recording a price point.
type PriceHistoryCreate struct {
	AssetID    int              `json:"asset_id"`
	Date       time.Time        `json:"date"`
	OpenPrice  *decimal.Decimal `json:"open_price,omitempty"`
	ClosePrice *decimal.Decimal `json:"close_price,omitempty"`
	HighPrice  *decimal.Decimal `json:"high_price,omitempty"`
	LowPrice   *decimal.Decimal `json:"low_price,omitempty"`
}

// Validate checks required fields before submission.
func (p *PriceHistoryCreate) Validate() error {
	if p.AssetID <= 0 {
		return fmt.Errorf("price history: asset_id is required")
	}
	if p.Date.IsZero() {
		return fmt.Errorf("price history: date is required")
	}
	if p.OpenPrice == nil && p.ClosePrice == nil && p.HighPrice == nil && p.LowPrice == nil {
		return fmt.Errorf("price history: at least one price is required")
	}
	return nil
}
