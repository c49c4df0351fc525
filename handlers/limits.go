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

type LimitHandler struct {
	svc *license.Service
}

func NewLimitHandler(svc *license.Service) *LimitHandler {
	return &LimitHandler{svc: svc}
}

// ChangeSchoolLimit handles POST /schools/{id}/limit
func (h *LimitHandler) ChangeSchoolLimit(w http.ResponseWriter, r *http.Request) {
	schoolID := r.PathValue("id")
	if schoolID == "" {
		middleware.Fail(w, http.StatusBadRequest, "school_id é obrigatório")
		return
	}

	req, actor, ok := parseLimitRequest(w, r)
	if !ok {
		return
	}

	if err := h.svc.ChangeSchoolLimit(schoolID, *req.NewLimit, req.Motivo, actor); err != nil {
		writeLicenseError(w, err)
		return
	}

	slog.Info("school limit changed", "school_id", schoolID, "new_limit", *req.NewLimit, "actor", actor)
	middleware.Success(w, "Limite alterado com sucesso", nil)
}

// GetGlobalLimit handles GET /license_limit
func (h *LimitHandler) GetGlobalLimit(w http.ResponseWriter, r *http.Request) {
	limit, err := h.svc.GetGlobalLimit()
	if err != nil {
		writeLicenseError(w, err)
		return
	}
	middleware.Success(w, "", map[string]int{"limit": limit})
}

// SetGlobalLimit handles POST /license_limit
func (h *LimitHandler) SetGlobalLimit(w http.ResponseWriter, r *http.Request) {
	req, actor, ok := parseLimitRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.svc.SetGlobalLimit(*req.NewLimit, req.Motivo, actor)
	if err != nil {
		writeLicenseError(w, err)
		return
	}

	slog.Info("global limit changed", "new_limit", *req.NewLimit, "updated", updated, "actor", actor)
	middleware.Success(w, "Limite global alterado com sucesso", map[string]int{
		"updated": updated,
		"limit":   *req.NewLimit,
	})
}

func parseLimitRequest(w http.ResponseWriter, r *http.Request) (models.ChangeLimitRequest, string, bool) {
	var req models.ChangeLimitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "JSON inválido")
		return req, "", false
	}
	if req.NewLimit == nil {
		middleware.Fail(w, http.StatusBadRequest, "newLimit é obrigatório")
		return req, "", false
	}

	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		middleware.Fail(w, http.StatusUnauthorized, "Token de autenticação ausente ou inválido")
		return req, "", false
	}
	return req, claims.Subject, true
}
