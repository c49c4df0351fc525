// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/maplebear-saf/saf-server/cliparse"
	"github.com/maplebear-saf/saf-server/middleware"
)

type MetricsHandler struct {
	cfg cliparse.Config
}

func NewMetricsHandler(cfg cliparse.Config) *MetricsHandler {
	return &MetricsHandler{cfg: cfg}
}

// Latest handles GET /metrics/latest by serving the most recent
// allocation snapshot written by the refresh job.
func (h *MetricsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.cfg.SnapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			middleware.Fail(w, http.StatusNotFound, "Nenhum snapshot disponível")
			return
		}
		slog.Error("failed to read snapshot", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Erro interno: "+err.Error())
		return
	}

	var snapshot json.RawMessage
	if err := json.Unmarshal(data, &snapshot); err != nil {
		slog.Error("snapshot file is corrupt", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Snapshot inválido")
		return
	}

	middleware.Success(w, "", snapshot)
}
