// Package app wires configuration, logging, the API client, and the session
// store into a single application core shared by cmd/cryptonav-server and the
// tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cryptonav/cryptonav/internal/clients/cryptonav"
	"github.com/cryptonav/cryptonav/internal/common"
	"github.com/cryptonav/cryptonav/internal/session"
)

// App holds the initialized application core.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	APIClient   *cryptonav.Client
	Sessions    *session.Store
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes the application core. configPath may be empty, in which
// case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, CRYPTONAV_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("CRYPTONAV_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "cryptonav.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/cryptonav.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative data path to binary directory
	if config.Storage.DataPath != "" && !filepath.IsAbs(config.Storage.DataPath) {
		config.Storage.DataPath = filepath.Join(binDir, config.Storage.DataPath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	apiClient := cryptonav.NewClient(
		cryptonav.WithBaseURL(config.API.BaseURL),
		cryptonav.WithLogger(logger),
		cryptonav.WithRateLimit(config.API.RateLimit),
		cryptonav.WithTimeout(config.API.GetTimeout()),
	)

	tokens := session.NewFileTokenStore(config.Storage.DataPath)
	sessions := session.NewStore(apiClient, tokens, logger)

	// Centralized 401 handling: a rejected bearer token on any resource call
	// forces sign-out, so the route guard redirects on the next navigation.
	apiClient.SetUnauthorizedHook(sessions.SignOut)

	sessions.Subscribe(func(s session.Session) {
		logger.Debug().Bool("authenticated", s.Authenticated()).Msg("Session state changed")
	})

	return &App{
		Config:      config,
		Logger:      logger,
		APIClient:   apiClient,
		Sessions:    sessions,
		StartupTime: time.Now(),
	}, nil
}
