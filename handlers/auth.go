// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/maplebear-saf/saf-server/auth"
	"github.com/maplebear-saf/saf-server/middleware"
	"github.com/maplebear-saf/saf-server/models"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(authSvc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: authSvc}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.Fail(w, http.StatusBadRequest, "Username e senha são obrigatórios")
		return
	}

	info, err := h.auth.Authenticate(req.Username, req.Password)
	if err != nil {
		var locked *auth.LockedError
		switch {
		case errors.As(err, &locked):
			middleware.Fail(w, http.StatusForbidden, locked.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			middleware.Fail(w, http.StatusUnauthorized, "Credenciais inválidas")
		default:
			slog.Error("authentication failed", "error", err)
			middleware.Fail(w, http.StatusInternalServerError, "Erro interno: "+err.Error())
		}
		return
	}

	token, err := h.auth.IssueToken(info)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Erro interno: "+err.Error())
		return
	}

	slog.Info("login succeeded", "username", info.Username, "role", info.Role)

	middleware.Success(w, "", models.LoginResponse{Token: token, User: info})
}
