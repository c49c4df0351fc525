// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/maplebear-saf/saf-server/auth"
	"github.com/maplebear-saf/saf-server/cliparse"
	"github.com/maplebear-saf/saf-server/handlers"
	"github.com/maplebear-saf/saf-server/license"
	"github.com/maplebear-saf/saf-server/middleware"
	"github.com/maplebear-saf/saf-server/models"
	"github.com/maplebear-saf/saf-server/refresh"
)

// NewRouter wires every route. job may be nil when no refresh job is
// configured (tests, collector-less deployments).
func NewRouter(db *sql.DB, cfg cliparse.Config, authSvc *auth.Service, job *refresh.Job) *http.ServeMux {
	mux := http.NewServeMux()

	svc := license.NewService(db)

	authHandler := handlers.NewAuthHandler(authSvc)
	schoolHandler := handlers.NewSchoolHandler(svc)
	licenseHandler := handlers.NewLicenseHandler(svc)
	limitHandler := handlers.NewLimitHandler(svc)
	auditHandler := handlers.NewAuditHandler(svc)
	adminHandler := handlers.NewAdminHandler(svc, authSvc, cfg, job)
	metricsHandler := handlers.NewMetricsHandler(cfg)

	agent := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(authSvc, models.RoleAgent, h))
	}
	coordinator := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(authSvc, models.RoleCoordinator, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(authSvc, models.RoleAdmin, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication (no token required)
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))

	// Schools and users
	mux.HandleFunc("GET /schools", agent(schoolHandler.Overview))
	mux.HandleFunc("GET /schools/{id}/users", agent(schoolHandler.Users))

	// License operations
	mux.HandleFunc("POST /licenses/assign", agent(licenseHandler.Assign))
	mux.HandleFunc("POST /licenses/revoke", agent(licenseHandler.Revoke))
	mux.HandleFunc("POST /licenses/transfer", agent(licenseHandler.Transfer))

	// Limits
	mux.HandleFunc("POST /schools/{id}/limit", coordinator(limitHandler.ChangeSchoolLimit))
	mux.HandleFunc("GET /license_limit", coordinator(limitHandler.GetGlobalLimit))
	mux.HandleFunc("POST /license_limit", coordinator(limitHandler.SetGlobalLimit))

	// Audit log
	mux.HandleFunc("GET /audit", coordinator(auditHandler.List))

	// Admin surface
	mux.HandleFunc("POST /admin/reload-data", coordinator(adminHandler.ReloadData))
	mux.HandleFunc("GET /admin/users", admin(adminHandler.ListStaff))
	mux.HandleFunc("POST /admin/users", admin(adminHandler.CreateStaff))
	mux.HandleFunc("PUT /admin/users/password", admin(adminHandler.UpdatePassword))
	mux.HandleFunc("PUT /admin/users/role", admin(adminHandler.UpdateRole))

	// Dashboard snapshot
	mux.HandleFunc("GET /metrics/latest", agent(metricsHandler.Latest))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("saf-server API v1"))
	})

	return mux
}
