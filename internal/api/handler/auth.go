package handler

import (
	"net/http"
	"time"

	"github.com/biteflow/restaurant-service/internal/api"
	"github.com/biteflow/restaurant-service/internal/middleware"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/biteflow/restaurant-service/internal/service"
)

// AuthHandler handles registration, sessions and session checks
type AuthHandler struct {
	authService   *service.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new auth handler. secureCookies marks session
// cookies Secure and SameSite=None for cross-site production front ends.
func NewAuthHandler(authService *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// Register creates an account without starting a session
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.BadRequest(w, "Please fill all the fields")
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusCreated, "User registered successfully", api.Data{"user": user})
}

// Login starts a user session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.BadRequest(w, "Please fill all the fields")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}

	h.setSessionCookie(w, token, h.authService.TokenTTL())
	api.Success(w, http.StatusOK, "User logged in successfully", api.Data{
		"user": api.Data{"name": user.Name, "email": user.Email},
	})
}

// AdminLogin starts an admin session for the configured admin
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.BadRequest(w, "Please fill all the fields")
		return
	}

	token, err := h.authService.AdminLogin(req)
	if err != nil {
		api.Error(w, err)
		return
	}

	h.setSessionCookie(w, token, h.authService.TokenTTL())
	api.Success(w, http.StatusOK, "Admin logged in successfully", api.Data{
		"admin": api.Data{"email": h.authService.AdminEmail(), "role": models.RoleAdmin},
	})
}

// Logout clears the session cookie. The token itself stays valid until it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	api.Success(w, http.StatusOK, "User logged out successfully", nil)
}

// Profile returns the stored user behind the session
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "", api.Data{"user": user})
}

// IsAdmin echoes the admin claims
func (h *AuthHandler) IsAdmin(w http.ResponseWriter, r *http.Request) {
	email, role := "admin", string(models.RoleAdmin)
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		if claims.Email != "" {
			email = claims.Email
		}
		if claims.Role != "" {
			role = claims.Role
		}
	}

	api.Success(w, http.StatusOK, "", api.Data{"admin": api.Data{"email": email, "role": role}})
}

// setSessionCookie writes the token cookie; a negative ttl deletes it
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if h.secureCookies {
		cookie.SameSite = http.SameSiteNoneMode
	}

	if ttl < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = time.Now().Add(ttl)
	}

	http.SetCookie(w, cookie)
}
