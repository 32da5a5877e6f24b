package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/digistore/digistore/internal/auth"
	"github.com/digistore/digistore/internal/handler/dto"
	"github.com/digistore/digistore/internal/middleware"
	"github.com/digistore/digistore/internal/service"
)

// uniformAuthMessage is the single user-visible message for every credential
// failure. Unknown-user vs wrong-password survives only in logs.
const uniformAuthMessage = "invalid email or password"

// AuthHandler handles signup, login and session endpoints.
type AuthHandler struct {
	svc          *service.AuthService
	tokens       *auth.TokenIssuer
	secureCookie bool
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. secureCookie should be true in
// production so the session cookie is HTTPS-only.
func NewAuthHandler(svc *service.AuthService, tokens *auth.TokenIssuer, secureCookie bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:          svc,
		tokens:       tokens,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	identity, err := h.svc.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Email and password are required")
		case errors.Is(err, service.ErrEmailExists):
			writeError(w, http.StatusBadRequest, "USER_EXISTS", "User already exists")
		default:
			h.logger.Error("signup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Error creating user")
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.ToIdentityResponse(identity))
}

// Login handles POST /api/v1/auth/login.
// On success the session token is returned in the body and set as an
// HttpOnly cookie with the token's lifetime.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	identity, err := h.svc.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials),
			errors.Is(err, service.ErrUnknownUser),
			errors.Is(err, service.ErrInvalidPassword):
			// Collapse all credential failures into one uniform response.
			h.logger.Warn("login rejected",
				"reason", err.Error(),
				"request_id", middleware.GetRequestID(r.Context()),
			)
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", uniformAuthMessage)
		default:
			h.logger.Error("login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		}
		return
	}

	token, err := h.tokens.Issue(identity)
	if err != nil {
		h.logger.Error("token issuance failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.tokens.TTL().Seconds())))

	h.logger.Info("login succeeded", "user_id", identity.UserID)

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		User:  dto.ToIdentityResponse(identity),
		Token: token,
	})
}

// Logout handles POST /api/v1/auth/logout. Sessions are stateless, so
// logout just clears the cookie; outstanding bearer tokens expire naturally.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())
	writeJSON(w, http.StatusOK, dto.ToIdentityResponse(identity))
}

func (h *AuthHandler) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
