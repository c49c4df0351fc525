// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/maplebear-saf/saf-server/auth"
	"github.com/maplebear-saf/saf-server/cliparse"
	"github.com/maplebear-saf/saf-server/license"
	"github.com/maplebear-saf/saf-server/middleware"
	"github.com/maplebear-saf/saf-server/models"
	"github.com/maplebear-saf/saf-server/refresh"
)

type AdminHandler struct {
	svc  *license.Service
	auth *auth.Service
	cfg  cliparse.Config
	job  *refresh.Job
}

// NewAdminHandler wires the admin surface. job may be nil when no
// refresh job is configured.
func NewAdminHandler(svc *license.Service, authSvc *auth.Service, cfg cliparse.Config, job *refresh.Job) *AdminHandler {
	return &AdminHandler{svc: svc, auth: authSvc, cfg: cfg, job: job}
}

// ReloadData handles POST /admin/reload-data
func (h *AdminHandler) ReloadData(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		middleware.Fail(w, http.StatusUnauthorized, "Token de autenticação ausente ou inválido")
		return
	}

	if err := h.svc.ReloadData(claims.Subject); err != nil {
		writeLicenseError(w, err)
		return
	}

	if h.job == nil {
		middleware.Success(w, "Dados já são lidos do banco (nada a recarregar)", nil)
		return
	}

	// The refresh can take minutes; run it out-of-band.
	go func() {
		if err := h.job.RunOnce(context.Background()); err != nil {
			slog.Error("manual refresh failed", "error", err)
		}
	}()

	slog.Info("manual refresh triggered", "actor", claims.Subject)
	middleware.Success(w, "Recarregamento iniciado", nil)
}

// ListStaff handles GET /admin/users
func (h *AdminHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	records, err := h.auth.ListStaff()
	if err != nil {
		slog.Error("failed to list staff", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Erro interno: "+err.Error())
		return
	}
	middleware.Success(w, "", records)
}

// CreateStaff handles POST /admin/users
func (h *AdminHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStaffRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Username == "" || req.Name == "" || req.Password == "" {
		middleware.Fail(w, http.StatusBadRequest, "Username, nome e senha são obrigatórios")
		return
	}
	if !h.allowedUsername(req.Username) {
		middleware.Fail(w, http.StatusBadRequest, "Domínio de email inválido")
		return
	}

	if err := h.auth.CreateStaff(req.Username, req.Name, req.Password, req.Role); err != nil {
		writeStaffError(w, err)
		return
	}

	slog.Info("staff created", "username", strings.ToLower(req.Username))
	middleware.Success(w, "Usuário criado com sucesso", nil)
}

// UpdatePassword handles PUT /admin/users/password
func (h *AdminHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Username == "" || req.NewPassword == "" {
		middleware.Fail(w, http.StatusBadRequest, "Username e nova senha são obrigatórios")
		return
	}

	if err := h.auth.UpdatePassword(req.Username, req.NewPassword); err != nil {
		writeStaffError(w, err)
		return
	}

	slog.Info("staff password updated", "username", strings.ToLower(req.Username))
	middleware.Success(w, "Senha atualizada com sucesso", nil)
}

// UpdateRole handles PUT /admin/users/role
func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Username == "" || req.NewRole == "" {
		middleware.Fail(w, http.StatusBadRequest, "Username e novo perfil são obrigatórios")
		return
	}

	if err := h.auth.UpdateRole(req.Username, req.NewRole); err != nil {
		writeStaffError(w, err)
		return
	}

	slog.Info("staff role updated", "username", strings.ToLower(req.Username))
	middleware.Success(w, "Perfil atualizado com sucesso", nil)
}

// allowedUsername accepts plain usernames and email-style usernames
// whose domain is on the allow-list.
func (h *AdminHandler) allowedUsername(username string) bool {
	username = strings.ToLower(strings.TrimSpace(username))
	at := strings.LastIndex(username, "@")
	if at < 0 {
		return true
	}
	domain := username[at+1:]
	for _, allowed := range h.cfg.AllowedDomains {
		if domain == allowed {
			return true
		}
	}
	return false
}

func writeStaffError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrStaffExists):
		middleware.Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrStaffNotFound):
		middleware.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrInvalidRole):
		middleware.Fail(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("staff operation failed", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Erro interno: "+err.Error())
	}
}
