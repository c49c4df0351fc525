// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/maplebear-saf/saf-server/auth"
	"github.com/maplebear-saf/saf-server/cliparse"
	"github.com/maplebear-saf/saf-server/db"
)

// TestPassword is the password every seeded staff account uses.
const TestPassword = "senha-teste-123"

// SetupTestDB opens a throwaway sqlite database with the full schema.
// The file lives in t.TempDir() so no external server is needed and
// each test starts clean.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "saf_test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// sqlite only allows one writer; serialize through a single conn
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3340,
		DatabaseType:   "sqlite",
		JWTSecret:      "test-jwt-secret",
		AllowedDomains: []string{"maplebear.com.br", "mbcentral.com.br"},
		SnapshotPath:   "canva_data_integrated_latest.json",
		SyncInterval:   24 * time.Hour,
	}
}

// CreateTestSchool inserts a school with the given license limit and
// returns its ID.
func CreateTestSchool(t *testing.T, conn *sql.DB, name string, limit int) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO schools (id, name, city, state, license_limit, status)
		VALUES ($1, $2, 'São Paulo', 'SP', $3, 'Ativa')
	`, id, name, limit)
	if err != nil {
		t.Fatalf("Failed to create test school: %v", err)
	}

	return id
}

// CreateTestUser inserts a school user and returns its ID.
func CreateTestUser(t *testing.T, conn *sql.DB, schoolID, email string, hasCanva bool) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO users (id, school_id, email, name, has_canva, is_compliant)
		VALUES ($1, $2, $3, 'Test User', $4, TRUE)
	`, id, schoolID, email, hasCanva)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

// CreateTestStaff seeds a staff account with TestPassword and the
// given role.
func CreateTestStaff(t *testing.T, conn *sql.DB, username, role string) {
	t.Helper()

	hash, salt, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO staff (username, name, role, password_hash, password_salt, created_at)
		VALUES ($1, 'Test Staff', $2, $3, $4, $5)
	`, username, role, hash, salt, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test staff: %v", err)
	}
}

// LoginTestStaff authenticates a seeded staff account and returns a
// bearer token.
func LoginTestStaff(t *testing.T, authSvc *auth.Service, username string) string {
	t.Helper()

	staff, err := authSvc.Authenticate(username, TestPassword)
	if err != nil {
		t.Fatalf("Failed to authenticate test staff: %v", err)
	}
	token, err := authSvc.IssueToken(staff)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
