package models

import (
	"fmt"
	"time"
)

// Portfolio is a named collection of holdings owned by a user.
type Portfolio struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks that a decoded portfolio is usable.
func (p *Portfolio) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("portfolio: name is required")
	}
	return nil
}

// PortfolioCreate is the request body for creating or updating a portfolio.
type PortfolioCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UserID      int    `json:"user_id"`
}

// Validate checks required fields before submission.
func (p *PortfolioCreate) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("portfolio: name is required")
	}
	if p.UserID <= 0 {
		return fmt.Errorf("portfolio: user_id is required")
	}
	return nil
}
