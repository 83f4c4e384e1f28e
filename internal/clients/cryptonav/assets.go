package cryptonav

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cryptonav/cryptonav/internal/models"
)

// ListAssets retrieves assets with offset pagination.
func (c *Client) ListAssets(ctx context.Context, token string, skip, limit int) ([]*models.Asset, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var assets []*models.Asset
	if err := c.get(ctx, "/assets/", token, query, &assets); err != nil {
		return nil, err
	}
	for _, a := range assets {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("malformed asset in response: %w", err)
		}
	}
	return assets, nil
}

// GetAsset retrieves a single asset by ID.
func (c *Client) GetAsset(ctx context.Context, token string, id int) (*models.Asset, error) {
	var asset models.Asset
	if err := c.get(ctx, fmt.Sprintf("/assets/%d", id), token, nil, &asset); err != nil {
		return nil, err
	}
	if err := asset.Validate(); err != nil {
		return nil, fmt.Errorf("malformed asset response: %w", err)
	}
	return &asset, nil
}

// CreateAsset registers a new asset.
func (c *Client) CreateAsset(ctx context.Context, token string, req *models.AssetCreate) (*models.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var asset models.Asset
	if err := c.post(ctx, "/assets/", token, nil, req, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateAsset replaces an asset's fields.
func (c *Client) UpdateAsset(ctx context.Context, token string, id int, req *models.AssetCreate) (*models.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var asset models.Asset
	if err := c.put(ctx, fmt.Sprintf("/assets/%d", id), token, req, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteAsset removes an asset.
func (c *Client) DeleteAsset(ctx context.Context, token string, id int) error {
	return c.delete(ctx, fmt.Sprintf("/assets/%d", id), token)
}
