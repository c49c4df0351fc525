// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/maplebear-saf/saf-server/license"
	"github.com/maplebear-saf/saf-server/middleware"
)

type AuditHandler struct {
	svc *license.Service
}

func NewAuditHandler(svc *license.Service) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// List handles GET /audit, including the CSV export variant
// (?export=csv).
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := license.AuditFilter{
		SchoolID: q.Get("schoolId"),
		Action:   q.Get("action"),
		Actor:    q.Get("actor"),
	}

	if raw := q.Get("start"); raw != "" {
		t, err := parseAuditTime(raw)
		if err != nil {
			middleware.Fail(w, http.StatusBadRequest, "Parâmetro start inválido")
			return
		}
		filter.Start = &t
	}
	if raw := q.Get("end"); raw != "" {
		t, err := parseAuditTime(raw)
		if err != nil {
			middleware.Fail(w, http.StatusBadRequest, "Parâmetro end inválido")
			return
		}
		filter.End = &t
	}

	logs, err := h.svc.AuditLogs(filter)
	if err != nil {
		writeLicenseError(w, err)
		return
	}

	if q.Get("export") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=auditoria.csv")
		if err := license.WriteAuditCSV(w, logs); err != nil {
			slog.Error("failed to write audit CSV", "error", err)
		}
		return
	}

	middleware.Success(w, "", logs)
}

// parseAuditTime accepts RFC 3339 timestamps and plain dates.
func parseAuditTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
