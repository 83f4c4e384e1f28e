package cryptonav

import (
	"context"
	"fmt"

	"github.com/cryptonav/cryptonav/internal/models"
)

// ListPortfolioTransactions retrieves all transactions in a portfolio.
func (c *Client) ListPortfolioTransactions(ctx context.Context, token string, portfolioID int) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	if err := c.get(ctx, fmt.Sprintf("/transactions/portfolio/%d", portfolioID), token, nil, &transactions); err != nil {
		return nil, err
	}
	for _, t := range transactions {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("malformed transaction in response: %w", err)
		}
	}
	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
func (c *Client) GetTransaction(ctx context.Context, token string, id int) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := c.get(ctx, fmt.Sprintf("/transactions/%d", id), token, nil, &transaction); err != nil {
		return nil, err
	}
	if err := transaction.Validate(); err != nil {
		return nil, fmt.Errorf("malformed transaction response: %w", err)
	}
	return &transaction, nil
}

// CreateTransaction records a buy or sell.
func (c *Client) CreateTransaction(ctx context.Context, token string, req *models.TransactionCreate) (*models.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var transaction models.Transaction
	if err := c.post(ctx, "/transactions/", token, nil, req, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, token string, id int) error {
	return c.delete(ctx, fmt.Sprintf("/transactions/%d", id), token)
}
