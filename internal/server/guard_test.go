package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_ProtectedPathsRequireSession(t *testing.T) {
	protected := []string{
		"/",
		"/assets",
		"/assets/3/update",
		"/portfolios",
		"/transactions",
		"/pricehistory",
		"/pricehistory/chart.png",
	}

	for _, path := range protected {
		assert.Equal(t, RedirectSignIn, Decide(path, false), "anonymous %s", path)
		assert.Equal(t, Allow, Decide(path, true), "authenticated %s", path)
	}
}

func TestDecide_AuthPathsAlwaysReachable(t *testing.T) {
	public := []string{"/signin", "/signup", "/signout"}

	for _, path := range public {
		assert.Equal(t, Allow, Decide(path, false), "anonymous %s", path)
		// No redirect away from the auth pages for signed-in users.
		assert.Equal(t, Allow, Decide(path, true), "authenticated %s", path)
	}
}

func TestDecide_SystemEndpointsPublic(t *testing.T) {
	assert.Equal(t, Allow, Decide("/api/health", false))
	assert.Equal(t, Allow, Decide("/api/version", false))
}
