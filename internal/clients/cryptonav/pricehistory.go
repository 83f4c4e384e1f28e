package cryptonav

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cryptonav/cryptonav/internal/models"
)

// ListAssetPriceHistory retrieves price records for an asset, optionally
// bounded by start/end dates (zero time means unbounded).
func (c *Client) ListAssetPriceHistory(ctx context.Context, token string, assetID int, start, end time.Time) ([]*models.PriceHistoryEntry, error) {
	query := url.Values{}
	if !start.IsZero() {
		query.Set("start_date", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		query.Set("end_date", end.Format(time.RFC3339))
	}

	var entries []*models.PriceHistoryEntry
	if err := c.get(ctx, fmt.Sprintf("/pricehistory/asset/%d", assetID), token, query, &entries); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("malformed price history entry in response: %w", err)
		}
	}
	return entries, nil
}

// CreatePriceHistory records a price point for an asset.
func (c *Client) CreatePriceHistory(ctx context.Context, token string, req *models.PriceHistoryCreate) (*models.PriceHistoryEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var entry models.PriceHistoryEntry
	if err := c.post(ctx, "/pricehistory/", token, nil, req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeletePriceHistory removes a price record.
func (c *Client) DeletePriceHistory(ctx context.Context, token string, id int) error {
	return c.delete(ctx, fmt.Sprintf("/pricehistory/%d", id), token)
}
