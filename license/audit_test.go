// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package license

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/maplebear-saf/saf-server/models"
	"github.com/maplebear-saf/saf-server/testutil"
)

func TestAuditLogs(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := NewService(conn)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := base
	svc.now = func() time.Time { return clock }

	schoolA := testutil.CreateTestSchool(t, conn, "Escola A", 2)
	schoolB := testutil.CreateTestSchool(t, conn, "Escola B", 2)
	testutil.CreateTestUser(t, conn, schoolA, "a@maplebear.com.br", false)
	testutil.CreateTestUser(t, conn, schoolB, "b@maplebear.com.br", true)

	if err := svc.Assign(schoolA, "a@maplebear.com.br", "m", "", "ana@maplebear.com.br"); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	clock = base.Add(time.Hour)
	if err := svc.Revoke(schoolB, "b@maplebear.com.br", "m", "", "bruno@maplebear.com.br"); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	clock = base.Add(2 * time.Hour)
	if err := svc.ChangeSchoolLimit(schoolA, 3, "m", "ana@maplebear.com.br"); err != nil {
		t.Fatalf("ChangeSchoolLimit() error = %v", err)
	}

	t.Run("no filter returns everything newest first", func(t *testing.T) {
		logs, err := svc.AuditLogs(AuditFilter{})
		if err != nil {
			t.Fatalf("AuditLogs() error = %v", err)
		}
		if len(logs) != 3 {
			t.Fatalf("Expected 3 entries, got %d", len(logs))
		}
		if logs[0].Action != models.ActionAlterLimit || logs[2].Action != models.ActionAssign {
			t.Errorf("Unexpected order: %s, %s, %s", logs[0].Action, logs[1].Action, logs[2].Action)
		}
		if logs[0].SchoolName != "Escola A" {
			t.Errorf("SchoolName = %q, want Escola A", logs[0].SchoolName)
		}
	})

	t.Run("filter by action", func(t *testing.T) {
		logs, err := svc.AuditLogs(AuditFilter{Action: models.ActionRevoke})
		if err != nil {
			t.Fatalf("AuditLogs() error = %v", err)
		}
		if len(logs) != 1 || logs[0].SchoolID != schoolB {
			t.Errorf("Expected single revoke entry for school B, got %+v", logs)
		}
	})

	t.Run("filter by school", func(t *testing.T) {
		logs, err := svc.AuditLogs(AuditFilter{SchoolID: schoolA})
		if err != nil {
			t.Fatalf("AuditLogs() error = %v", err)
		}
		if len(logs) != 2 {
			t.Errorf("Expected 2 entries for school A, got %d", len(logs))
		}
	})

	t.Run("filter by actor substring", func(t *testing.T) {
		logs, err := svc.AuditLogs(AuditFilter{Actor: "BRUNO"})
		if err != nil {
			t.Fatalf("AuditLogs() error = %v", err)
		}
		if len(logs) != 1 || logs[0].Actor != "bruno@maplebear.com.br" {
			t.Errorf("Expected bruno's single entry, got %+v", logs)
		}
	})

	t.Run("filter by time range", func(t *testing.T) {
		start := base.Add(30 * time.Minute)
		end := base.Add(90 * time.Minute)
		logs, err := svc.AuditLogs(AuditFilter{Start: &start, End: &end})
		if err != nil {
			t.Fatalf("AuditLogs() error = %v", err)
		}
		if len(logs) != 1 || logs[0].Action != models.ActionRevoke {
			t.Errorf("Expected only the revoke inside the window, got %+v", logs)
		}
	})

	t.Run("combined filters", func(t *testing.T) {
		logs, err := svc.AuditLogs(AuditFilter{SchoolID: schoolA, Action: models.ActionAssign, Actor: "ana"})
		if err != nil {
			t.Fatalf("AuditLogs() error = %v", err)
		}
		if len(logs) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(logs))
		}
		if logs[0].Payload["user_email"] != "a@maplebear.com.br" {
			t.Errorf("Payload = %+v", logs[0].Payload)
		}
	})
}

func TestWriteAuditCSV(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	logs := []models.AuditLog{
		{
			ID:         "1",
			Action:     models.ActionAssign,
			SchoolID:   "42",
			SchoolName: "Escola Teste",
			Actor:      "ana@maplebear.com.br",
			Payload:    map[string]interface{}{"user_email": "x@maplebear.com.br"},
			TS:         ts,
		},
	}

	var buf bytes.Buffer
	if err := WriteAuditCSV(&buf, logs); err != nil {
		t.Fatalf("WriteAuditCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header + 1 row, got %d records", len(records))
	}

	wantHeader := []string{"Data/Hora", "Ação", "Escola ID", "Escola", "Usuário", "Detalhes"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	row := records[1]
	if row[0] != "2025-03-01T10:00:00Z" {
		t.Errorf("timestamp = %q", row[0])
	}
	if row[1] != models.ActionAssign || row[2] != "42" || row[3] != "Escola Teste" {
		t.Errorf("row = %v", row)
	}
	if !strings.Contains(row[5], "x@maplebear.com.br") {
		t.Errorf("payload column = %q, want it to carry the user email", row[5])
	}
}

func TestWriteAuditCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAuditCSV(&buf, nil); err != nil {
		t.Fatalf("WriteAuditCSV() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV output: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected header only, got %d records", len(records))
	}
}
