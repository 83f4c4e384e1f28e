package cryptonav

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cryptonav/cryptonav/internal/models"
)

// Login exchanges credentials for an access token. The backend takes the
// credentials as query parameters and answers 401 on a mismatch.
func (c *Client) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("password", password)

	var resp models.TokenResponse
	if err := c.post(ctx, "/users/login", "", query, nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("malformed login response: %w", err)
	}
	return &resp, nil
}

// Register creates a new account. Registration does not establish a session;
// callers follow up with an explicit Login.
func (c *Client) Register(ctx context.Context, username, email, password string) (*models.RegisterResponse, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("email", email)
	query.Set("password", password)

	var resp models.RegisterResponse
	if err := c.post(ctx, "/users/register", "", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser fetches the profile of the token's owner.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/users/me", token, nil, &user); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("malformed profile response: %w", err)
	}
	return &user, nil
}
