// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/maplebear-saf/saf-server/license"
	"github.com/maplebear-saf/saf-server/middleware"
)

type SchoolHandler struct {
	svc *license.Service
}

func NewSchoolHandler(svc *license.Service) *SchoolHandler {
	return &SchoolHandler{svc: svc}
}

// Overview handles GET /schools
func (h *SchoolHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overviews, err := h.svc.Overview()
	if err != nil {
		writeLicenseError(w, err)
		return
	}
	middleware.Success(w, "", overviews)
}

// Users handles GET /schools/{id}/users
func (h *SchoolHandler) Users(w http.ResponseWriter, r *http.Request) {
	schoolID := r.PathValue("id")
	if schoolID == "" {
		middleware.Fail(w, http.StatusBadRequest, "school_id é obrigatório")
		return
	}

	users, err := h.svc.SchoolUsers(schoolID)
	if err != nil {
		writeLicenseError(w, err)
		return
	}
	middleware.Success(w, "", users)
}
