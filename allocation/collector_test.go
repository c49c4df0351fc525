// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPCollector(t *testing.T) {
	t.Run("decodes the metrics payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/metrics" {
				t.Errorf("Path = %q, want /metrics", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"timestamp": 1748800000,
				"data_atualizacao": "01/06/2025",
				"designs_criados": 42,
				"total_pessoas": 1,
				"usuarios": [{"nome": "Ana", "email": "ana@escola.com.br", "funcao": "Professor"}]
			}`))
		}))
		defer srv.Close()

		// Trailing slash must not produce a double-slash URL
		c := NewHTTPCollector(srv.URL + "/")
		metrics, err := c.Collect(context.Background())
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if metrics.DesignsCriados != 42 || metrics.TotalPessoas != 1 {
			t.Errorf("metrics = %+v", metrics)
		}
		if len(metrics.Usuarios) != 1 || metrics.Usuarios[0].Email != "ana@escola.com.br" {
			t.Errorf("usuarios = %+v", metrics.Usuarios)
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "scraper down", http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewHTTPCollector(srv.URL)
		if _, err := c.Collect(context.Background()); err == nil {
			t.Error("Expected error for 502 response")
		}
	})

	t.Run("invalid JSON is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		c := NewHTTPCollector(srv.URL)
		if _, err := c.Collect(context.Background()); err == nil {
			t.Error("Expected error for invalid payload")
		}
	})
}
