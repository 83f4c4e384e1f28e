package cryptonav

import (
	"context"
	"fmt"

	"github.com/cryptonav/cryptonav/internal/models"
)

// ListUserPortfolios retrieves all portfolios owned by a user.
func (c *Client) ListUserPortfolios(ctx context.Context, token string, userID int) ([]*models.Portfolio, error) {
	var portfolios []*models.Portfolio
	if err := c.get(ctx, fmt.Sprintf("/portfolios/user/%d", userID), token, nil, &portfolios); err != nil {
		return nil, err
	}
	for _, p := range portfolios {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("malformed portfolio in response: %w", err)
		}
	}
	return portfolios, nil
}

// GetPortfolio retrieves a single portfolio by ID.
func (c *Client) GetPortfolio(ctx context.Context, token string, id int) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := c.get(ctx, fmt.Sprintf("/portfolios/%d", id), token, nil, &portfolio); err != nil {
		return nil, err
	}
	if err := portfolio.Validate(); err != nil {
		return nil, fmt.Errorf("malformed portfolio response: %w", err)
	}
	return &portfolio, nil
}

// CreatePortfolio creates a new portfolio.
func (c *Client) CreatePortfolio(ctx context.Context, token string, req *models.PortfolioCreate) (*models.Portfolio, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var portfolio models.Portfolio
	if err := c.post(ctx, "/portfolios/", token, nil, req, &portfolio); err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// UpdatePortfolio replaces a portfolio's fields.
func (c *Client) UpdatePortfolio(ctx context.Context, token string, id int, req *models.PortfolioCreate) (*models.Portfolio, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var portfolio models.Portfolio
	if err := c.put(ctx, fmt.Sprintf("/portfolios/%d", id), token, req, &portfolio); err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// DeletePortfolio removes a portfolio.
func (c *Client) DeletePortfolio(ctx context.Context, token string, id int) error {
	return c.delete(ctx, fmt.Sprintf("/portfolios/%d", id), token)
}
