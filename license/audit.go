// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package license

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/maplebear-saf/saf-server/models"
)

// AuditFilter narrows an audit log query. Zero values mean "no filter".
type AuditFilter struct {
	Start    *time.Time
	End      *time.Time
	SchoolID string
	Action   string
	Actor    string // substring, case-insensitive
}

// AuditLogs returns audit entries newest-first, joined with the school
// name where one still exists.
func (s *Service) AuditLogs(filter AuditFilter) ([]models.AuditLog, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Start != nil {
		add("a.ts >= $%d", *filter.Start)
	}
	if filter.End != nil {
		add("a.ts <= $%d", *filter.End)
	}
	if filter.SchoolID != "" {
		add("a.school_id = $%d", filter.SchoolID)
	}
	if filter.Action != "" {
		add("a.action = $%d", filter.Action)
	}
	if filter.Actor != "" {
		add("LOWER(a.actor) LIKE $%d", "%"+strings.ToLower(filter.Actor)+"%")
	}

	query := `
		SELECT a.id, a.action, a.school_id, a.actor, a.payload, a.ts, s.name
		FROM audit_logs a
		LEFT JOIN schools s ON s.id = a.school_id
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.ts DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	logs := []models.AuditLog{}
	for rows.Next() {
		var log models.AuditLog
		var schoolID, schoolName sql.NullString
		var payload string
		if err := rows.Scan(&log.ID, &log.Action, &schoolID, &log.Actor, &payload, &log.TS, &schoolName); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		log.SchoolID = schoolID.String
		log.SchoolName = schoolName.String
		log.Payload = map[string]interface{}{}
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &log.Payload); err != nil {
				return nil, fmt.Errorf("failed to decode audit payload: %w", err)
			}
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// WriteAuditCSV renders audit entries in the flat export format, fixed
// column order.
func WriteAuditCSV(w io.Writer, logs []models.AuditLog) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Data/Hora", "Ação", "Escola ID", "Escola", "Usuário", "Detalhes"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, log := range logs {
		payload, err := json.Marshal(log.Payload)
		if err != nil {
			return fmt.Errorf("failed to encode audit payload: %w", err)
		}
		row := []string{
			log.TS.Format(time.RFC3339),
			log.Action,
			log.SchoolID,
			log.SchoolName,
			log.Actor,
			string(payload),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
