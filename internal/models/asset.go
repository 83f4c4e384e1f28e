package models

import "fmt"

// Asset is a tradeable cryptocurrency known to the backend.
type Asset struct {
	ID          int    `json:"id"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate checks the fields the backend requires on create/update.
func (a *Asset) Validate() error {
	if a.Symbol == "" {
		return fmt.Errorf("asset: symbol is required")
	}
	if a.Name == "" {
		return fmt.Errorf("asset: name is required")
	}
	return nil
}

// AssetCreate is the request body for creating or updating an asset.
type AssetCreate struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate checks required fields before the request leaves the process.
func (a *AssetCreate) Validate() error {
	if a.Symbol == "" {
		return fmt.Errorf("asset: symbol is required")
	}
	if a.Name == "" {
		return fmt.Errorf("asset: name is required")
	}
	return nil
}
