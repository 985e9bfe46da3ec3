package httpapi

import (
	"crypto/subtle"
	"net/http"

	"bgcafe/cafe-service/internal/router"

	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the boundary secrets: the baseline API key every caller
// must present, and the admin account checked via HTTP basic auth. The
// bcrypt hash is preferred when configured; the plaintext password is a
// fallback for local setups.
type Credentials struct {
	APIKey            string
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
}

func (c Credentials) ValidAPIKey(r *http.Request) bool {
	key := r.Header.Get("x-api-key")
	if key == "" || c.APIKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(c.APIKey)) == 1
}

func (c Credentials) ValidAdmin(r *http.Request) bool {
	username, password, ok := r.BasicAuth()
	if !ok || c.AdminUsername == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(c.AdminUsername)) != 1 {
		return false
	}
	if c.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.AdminPasswordHash), []byte(password)) == nil
	}
	if c.AdminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(c.AdminPassword)) == 1
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request, _ router.Params) {
	if h.creds.ValidAdmin(r) {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{"login": "OK", "isAdmin": true})
		return
	}
	h.writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"login": "NG", "isAdmin": false})
}
