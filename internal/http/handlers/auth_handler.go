package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmttc/workshop-registration/internal/domain"
	mw "github.com/mmttc/workshop-registration/internal/http/middleware"
	"github.com/mmttc/workshop-registration/internal/http/response"
	"github.com/mmttc/workshop-registration/internal/service"
)

type AuthHandler struct {
	Auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" || in.Password == "" {
		response.BadRequest(w, "email and password are required")
		return
	}

	sess, err := h.Auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.Unauthorized(w, "Login failed: invalid credentials")
			return
		}
		response.InternalError(w, "login error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"token":      sess.Token,
		"email":      sess.Email,
		"expires_at": sess.ExpiresAt,
	})
}

// Logout always answers 204; a failed remote delete leaves the token to die
// on its TTL.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	_ = h.Auth.Logout(r.Context(), mw.BearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Auth.WhoAmI(r.Context(), mw.BearerToken(r))
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			response.Unauthorized(w, "no active session")
			return
		}
		response.InternalError(w, "session lookup failed")
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"email":      sess.Email,
		"admin_id":   sess.AdminID,
		"expires_at": sess.ExpiresAt,
	})
}
