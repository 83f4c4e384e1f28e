// Package models defines the data transfer types exchanged with the CryptoNav API.
package models

import "fmt"

// User is the profile returned by the backend for the authenticated account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Validate checks that a decoded profile is usable.
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("user: username is required")
	}
	return nil
}

// TokenResponse is the body of a successful login call.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Validate ensures the login response actually carries a token.
func (t *TokenResponse) Validate() error {
	if t.AccessToken == "" {
		return fmt.Errorf("token response: access_token is required")
	}
	return nil
}

// RegisterResponse is the body of a successful registration call.
type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
