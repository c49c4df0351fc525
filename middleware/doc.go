// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Role Enforcement

RequireRole verifies the Bearer token and the caller's position in the
agent < coordinator < admin hierarchy before invoking the handler:

	mux.HandleFunc("GET /audit",
		middleware.RequireRole(authSvc, models.RoleCoordinator, handler))

On success the verified claims are stored in the request context and
recovered with ClaimsFrom:

	claims, ok := middleware.ClaimsFrom(r)

# Response Envelope

Success and Fail write the uniform API envelope:

	middleware.Success(w, "Licença atribuída com sucesso", data)
	middleware.Fail(w, http.StatusNotFound, "Escola não encontrada")

Parse JSON request bodies:

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

# CORS Middleware

Enable cross-origin requests for the dashboard frontend:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization.

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
