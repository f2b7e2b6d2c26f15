package main

import (
	"net/http"
	"os"
	"strings"
)

// cookie configuration (shared with auth.go)
var cookieName = getenv("COOKIE_NAME", "sp_auth")
var cookieSecure = os.Getenv("COOKIE_SECURE") == "true"

// optional cookie domain for subdomain setups (e.g., api.yourdomain.com + www.yourdomain.com)
var cookieDomain = os.Getenv("COOKIE_DOMAIN")

// let env control SameSite: "none" | "lax" | "strict"  (default: lax)
var cookieSameSite = func() http.SameSite {
	switch strings.ToLower(os.Getenv("COOKIE_SAMESITE")) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}()

// userIDFromRequest extracts the authenticated user id from the JWT cookie.
// Returns 0 when the request carries no valid session.
func userIDFromRequest(r *http.Request) uint {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return 0
	}
	claims, err := parseToken(c.Value)
	if err != nil || claims == nil {
		return 0
	}
	return claims.UserID
}
