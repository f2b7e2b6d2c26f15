package main

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

/* ===================== Helpers (cookie) ====================== */

func setAuthCookie(w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		Domain:   cookieDomain,
		HttpOnly: true,
		SameSite: cookieSameSite,
		Secure:   cookieSecure,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	}
	http.SetCookie(w, c)
}

func clearAuthCookie(w http.ResponseWriter) {
	c := &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Domain:   cookieDomain,
		HttpOnly: true,
		SameSite: cookieSameSite,
		Secure:   cookieSecure,
		MaxAge:   -1,
	}
	http.SetCookie(w, c)
}

/* ===================== DTOs ====================== */

type authReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/* ===================== Handlers ====================== */

// POST /api/register
func (a *api) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in authReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		errorJSON(w, http.StatusBadRequest, "username and password required")
		return
	}

	// Unique username?
	_, exists, err := a.store.GetUserByUsername(in.Username)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if exists {
		errorJSON(w, http.StatusBadRequest, "username already exists")
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	u, err := a.store.CreateUser(in.Username, string(hash))
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	// Seed the aggregate row up front so the first dashboard load has
	// starting currency to show.
	if _, err := a.store.CreateUserStats(UserStats{
		UserID:        u.ID,
		Currency:      a.cfg.StartingCurrency,
		Level:         1,
		LastStudyDate: time.Now().UTC(),
	}); err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	tok, err := signToken(u.ID, 24*30) // 30 days
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "token error")
		return
	}
	setAuthCookie(w, tok)
	writeJSON(w, http.StatusCreated, toDTO(u))
}

// POST /api/login
func (a *api) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in authReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	in.Username = strings.TrimSpace(in.Username)

	u, found, err := a.store.GetUserByUsername(in.Username)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if !found || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		errorJSON(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	tok, err := signToken(u.ID, 24*30)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "token error")
		return
	}
	setAuthCookie(w, tok)
	writeJSON(w, http.StatusOK, toDTO(u))
}

// POST /api/logout
func (a *api) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// GET /api/user
func (a *api) handleMe(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromRequest(r)
	if uid == 0 {
		errorJSON(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	u, found, err := a.store.GetUser(uid)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if !found {
		errorJSON(w, http.StatusUnauthorized, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, toDTO(u))
}

/* ===================== Middleware ====================== */

// requireAuth rejects the request before business logic when the JWT
// cookie is missing or invalid.
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userIDFromRequest(r) == 0 {
			errorJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}
