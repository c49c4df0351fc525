// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/maplebear-saf/saf-server/license"
	"github.com/maplebear-saf/saf-server/middleware"
	"github.com/maplebear-saf/saf-server/models"
)

type LicenseHandler struct {
	svc *license.Service
}

func NewLicenseHandler(svc *license.Service) *LicenseHandler {
	return &LicenseHandler{svc: svc}
}

// Assign handles POST /licenses/assign
func (h *LicenseHandler) Assign(w http.ResponseWriter, r *http.Request) {
	req, actor, ok := parseLicenseAction(w, r)
	if !ok {
		return
	}
	if req.UserEmail == "" {
		middleware.Fail(w, http.StatusBadRequest, "user_email é obrigatório")
		return
	}

	if err := h.svc.Assign(req.SchoolID, req.UserEmail, req.Motivo, req.Ticket, actor); err != nil {
		writeLicenseError(w, err)
		return
	}

	slog.Info("license assigned", "school_id", req.SchoolID, "user_email", req.UserEmail, "actor", actor)
	middleware.Success(w, "Licença atribuída com sucesso", nil)
}

// Revoke handles POST /licenses/revoke
func (h *LicenseHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	req, actor, ok := parseLicenseAction(w, r)
	if !ok {
		return
	}
	if req.UserEmail == "" {
		middleware.Fail(w, http.StatusBadRequest, "user_email é obrigatório")
		return
	}

	if err := h.svc.Revoke(req.SchoolID, req.UserEmail, req.Motivo, req.Ticket, actor); err != nil {
		writeLicenseError(w, err)
		return
	}

	slog.Info("license revoked", "school_id", req.SchoolID, "user_email", req.UserEmail, "actor", actor)
	middleware.Success(w, "Licença revogada com sucesso", nil)
}

// Transfer handles POST /licenses/transfer
func (h *LicenseHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	req, actor, ok := parseLicenseAction(w, r)
	if !ok {
		return
	}
	if req.FromEmail == "" || req.ToEmail == "" {
		middleware.Fail(w, http.StatusBadRequest, "from_email e to_email são obrigatórios")
		return
	}

	if err := h.svc.Transfer(req.SchoolID, req.FromEmail, req.ToEmail, req.Motivo, req.Ticket, actor); err != nil {
		writeLicenseError(w, err)
		return
	}

	slog.Info("license transferred",
		"school_id", req.SchoolID,
		"from_email", req.FromEmail,
		"to_email", req.ToEmail,
		"actor", actor,
	)
	middleware.Success(w, "Licença transferida com sucesso", nil)
}

func parseLicenseAction(w http.ResponseWriter, r *http.Request) (models.LicenseActionRequest, string, bool) {
	var req models.LicenseActionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "JSON inválido")
		return req, "", false
	}
	if req.SchoolID == "" {
		middleware.Fail(w, http.StatusBadRequest, "school_id é obrigatório")
		return req, "", false
	}

	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		middleware.Fail(w, http.StatusUnauthorized, "Token de autenticação ausente ou inválido")
		return req, "", false
	}
	return req, claims.Subject, true
}

// writeLicenseError maps service failures onto the envelope: missing
// school/user → 404, business precondition → 400, anything else → 500.
func writeLicenseError(w http.ResponseWriter, err error) {
	switch {
	case license.IsNotFound(err):
		middleware.Fail(w, http.StatusNotFound, err.Error())
	case license.IsConflict(err):
		middleware.Fail(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("license operation failed", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Erro interno: "+err.Error())
	}
}
