package server

import "strings"

// Decision is the route guard's verdict for a navigation.
type Decision int

const (
	// Allow renders the requested view.
	Allow Decision = iota
	// RedirectSignIn sends the requester to the sign-in page.
	RedirectSignIn
)

// publicPaths are reachable in every session state. The auth pages stay
// reachable for authenticated users too; no redirect away from /signin is
// performed.
var publicPaths = map[string]bool{
	"/signin":      true,
	"/signup":      true,
	"/signout":     true,
	"/api/health":  true,
	"/api/version": true,
}

// Decide maps (path, authenticated) to a guard decision. It is a pure
// function re-evaluated on every request, so a sign-out mid-session redirects
// the very next navigation.
func Decide(path string, authenticated bool) Decision {
	if publicPaths[path] || strings.HasPrefix(path, "/static/") {
		return Allow
	}
	if authenticated {
		return Allow
	}
	return RedirectSignIn
}
