// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package license

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maplebear-saf/saf-server/models"
)

// DefaultLimit applies when no limit has been configured for a school.
const DefaultLimit = 2

// Service implements the license business operations over the ledger.
// Every mutation runs in a single transaction: the precondition check,
// the flag/limit update and the audit insert commit together.
type Service struct {
	db  *sql.DB
	now func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Assign grants a license to a user of the given school.
func (s *Service) Assign(schoolID, userEmail, motivo, ticket, actor string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	limit, err := schoolLimit(tx, schoolID)
	if err != nil {
		return err
	}

	u, err := findUser(tx, schoolID, userEmail)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		return err
	}
	if u.hasCanva {
		return ErrAlreadyLicensed
	}
	if !u.isCompliant {
		return ErrNotCompliant
	}

	used, err := usedCount(tx, schoolID)
	if err != nil {
		return err
	}
	if used >= limit {
		return ErrLimitReached
	}

	if _, err := tx.Exec(`UPDATE users SET has_canva = TRUE WHERE id = $1`, u.id); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	payload := map[string]interface{}{"user_email": userEmail, "motivo": motivo, "ticket": ticket}
	if err := s.insertAudit(tx, models.ActionAssign, schoolID, actor, payload); err != nil {
		return err
	}

	return tx.Commit()
}

// Revoke clears a user's license flag.
func (s *Service) Revoke(schoolID, userEmail, motivo, ticket, actor string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	u, err := findUser(tx, schoolID, userEmail)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		return err
	}
	if !u.hasCanva {
		return ErrNotLicensed
	}

	if _, err := tx.Exec(`UPDATE users SET has_canva = FALSE WHERE id = $1`, u.id); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	payload := map[string]interface{}{"user_email": userEmail, "motivo": motivo, "ticket": ticket}
	if err := s.insertAudit(tx, models.ActionRevoke, schoolID, actor, payload); err != nil {
		return err
	}

	return tx.Commit()
}

// Transfer moves a license between two users of the same school. Both
// flag flips and the single audit row commit atomically.
func (s *Service) Transfer(schoolID, fromEmail, toEmail, motivo, ticket, actor string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	from, err := findUser(tx, schoolID, fromEmail)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrFromUserNotFound
		}
		return err
	}
	to, err := findUser(tx, schoolID, toEmail)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrToUserNotFound
		}
		return err
	}

	if !from.hasCanva {
		return ErrFromNotLicensed
	}
	if to.hasCanva {
		return ErrToAlreadyLicensed
	}
	if !to.isCompliant {
		return ErrToNotCompliant
	}

	if _, err := tx.Exec(`UPDATE users SET has_canva = FALSE WHERE id = $1`, from.id); err != nil {
		return fmt.Errorf("failed to update source user: %w", err)
	}
	if _, err := tx.Exec(`UPDATE users SET has_canva = TRUE WHERE id = $1`, to.id); err != nil {
		return fmt.Errorf("failed to update destination user: %w", err)
	}

	payload := map[string]interface{}{
		"from_email": fromEmail,
		"to_email":   toEmail,
		"motivo":     motivo,
		"ticket":     ticket,
	}
	if err := s.insertAudit(tx, models.ActionTransfer, schoolID, actor, payload); err != nil {
		return err
	}

	return tx.Commit()
}

// ChangeSchoolLimit sets one school's license limit and records the
// change in the school_limits history.
func (s *Service) ChangeSchoolLimit(schoolID string, newLimit int, motivo, actor string) error {
	if newLimit < 0 {
		return ErrNegativeLimit
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	oldLimit, err := schoolLimit(tx, schoolID)
	if err != nil {
		return err
	}

	if err := s.applyLimit(tx, schoolID, newLimit); err != nil {
		return err
	}

	payload := map[string]interface{}{"old_limit": oldLimit, "new_limit": newLimit, "motivo": motivo}
	if err := s.insertAudit(tx, models.ActionAlterLimit, schoolID, actor, payload); err != nil {
		return err
	}

	return tx.Commit()
}

// SetGlobalLimit applies one limit to every school, writing one audit
// row per affected school. Returns the number of schools updated.
func (s *Service) SetGlobalLimit(newLimit int, motivo, actor string) (int, error) {
	if newLimit < 0 {
		return 0, ErrNegativeLimit
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT id, license_limit FROM schools`)
	if err != nil {
		return 0, fmt.Errorf("failed to query schools: %w", err)
	}
	oldLimits := map[string]int{}
	for rows.Next() {
		var id string
		var limit int
		if err := rows.Scan(&id, &limit); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan school: %w", err)
		}
		oldLimits[id] = limit
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for id, old := range oldLimits {
		if err := s.applyLimit(tx, id, newLimit); err != nil {
			return 0, err
		}
		payload := map[string]interface{}{"old_limit": old, "new_limit": newLimit, "motivo": motivo}
		if err := s.insertAudit(tx, models.ActionAlterLimit, id, actor, payload); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(oldLimits), nil
}

// GetGlobalLimit returns the most common configured limit, falling back
// to DefaultLimit when there are no schools.
func (s *Service) GetGlobalLimit() (int, error) {
	rows, err := s.db.Query(`SELECT license_limit FROM schools`)
	if err != nil {
		return 0, fmt.Errorf("failed to query schools: %w", err)
	}
	defer rows.Close()

	counts := map[int]int{}
	for rows.Next() {
		var limit int
		if err := rows.Scan(&limit); err != nil {
			return 0, fmt.Errorf("failed to scan limit: %w", err)
		}
		counts[limit]++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	best, bestCount := DefaultLimit, 0
	for limit, count := range counts {
		if count > bestCount || (count == bestCount && limit < best) {
			best, bestCount = limit, count
		}
	}
	return best, nil
}

// Overview lists every school with its current usage, derived status
// label and dashboard badge.
func (s *Service) Overview() ([]models.SchoolOverview, error) {
	usage := map[string]int{}
	rows, err := s.db.Query(`
		SELECT school_id, COUNT(*)
		FROM users
		WHERE has_canva = TRUE
		GROUP BY school_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan usage: %w", err)
		}
		usage[id] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, name, status, cluster, city, state, region, carteira_saf,
		       license_limit, contact_email, contact_phone, address, neighborhood
		FROM schools
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schools: %w", err)
	}
	defer rows.Close()

	overviews := []models.SchoolOverview{}
	for rows.Next() {
		var o models.SchoolOverview
		var contactEmail, contactPhone, address, neighborhood string
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Status, &o.Cluster, &o.City, &o.State, &o.Region,
			&o.CarteiraSAF, &o.Limit, &contactEmail, &contactPhone, &address, &neighborhood,
		); err != nil {
			return nil, fmt.Errorf("failed to scan school: %w", err)
		}

		o.Used = usage[o.ID]
		o.UsageStatus = models.UsageStatus(o.Used, o.Limit)
		o.Badge = models.GenerateBadge(o.Used, o.Limit)
		o.Contact = models.Contact{
			Phone:   contactPhone,
			Email:   contactEmail,
			Address: fmt.Sprintf("%s, %s, %s/%s", address, neighborhood, o.City, o.State),
		}
		overviews = append(overviews, o)
	}
	return overviews, rows.Err()
}

// SchoolUsers lists the license subjects of one school.
func (s *Service) SchoolUsers(schoolID string) ([]models.SchoolUser, error) {
	var schoolName string
	err := s.db.QueryRow(`SELECT name FROM schools WHERE id = $1`, schoolID).Scan(&schoolName)
	if err == sql.ErrNoRows {
		return nil, ErrSchoolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query school: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT name, email, has_canva, is_compliant
		FROM users
		WHERE school_id = $1
		ORDER BY LOWER(email)
	`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.SchoolUser{}
	for rows.Next() {
		var u models.SchoolUser
		if err := rows.Scan(&u.Name, &u.Email, &u.HasCanva, &u.IsCompliant); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.SchoolID = schoolID
		u.SchoolName = schoolName
		if u.HasCanva {
			u.StatusLicenca = "Ativa"
		} else {
			u.StatusLicenca = "Sem licença"
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ReloadData records an audit entry for a manual snapshot reload.
func (s *Service) ReloadData(actor string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.insertAudit(tx, models.ActionReloadData, "system", actor, map[string]interface{}{}); err != nil {
		return err
	}
	return tx.Commit()
}

// UsedCount returns the number of active licenses for a school.
func (s *Service) UsedCount(schoolID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM users WHERE school_id = $1 AND has_canva = TRUE
	`, schoolID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count licenses: %w", err)
	}
	return count, nil
}

// --- internal helpers ---

type userRow struct {
	id          string
	hasCanva    bool
	isCompliant bool
}

func findUser(tx *sql.Tx, schoolID, email string) (userRow, error) {
	var u userRow
	err := tx.QueryRow(`
		SELECT id, has_canva, is_compliant
		FROM users
		WHERE school_id = $1 AND LOWER(email) = LOWER($2)
	`, schoolID, email).Scan(&u.id, &u.hasCanva, &u.isCompliant)
	if err != nil && err != sql.ErrNoRows {
		return userRow{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, err
}

func schoolLimit(tx *sql.Tx, schoolID string) (int, error) {
	var limit int
	err := tx.QueryRow(`SELECT license_limit FROM schools WHERE id = $1`, schoolID).Scan(&limit)
	if err == sql.ErrNoRows {
		return 0, ErrSchoolNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query school: %w", err)
	}
	return limit, nil
}

func usedCount(tx *sql.Tx, schoolID string) (int, error) {
	var count int
	err := tx.QueryRow(`
		SELECT COUNT(*) FROM users WHERE school_id = $1 AND has_canva = TRUE
	`, schoolID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count licenses: %w", err)
	}
	return count, nil
}

func (s *Service) applyLimit(tx *sql.Tx, schoolID string, newLimit int) error {
	if _, err := tx.Exec(`UPDATE schools SET license_limit = $1 WHERE id = $2`, newLimit, schoolID); err != nil {
		return fmt.Errorf("failed to update limit: %w", err)
	}
	_, err := tx.Exec(`
		INSERT INTO school_limits (id, school_id, limit_value, updated_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), schoolID, newLimit, s.now())
	if err != nil {
		return fmt.Errorf("failed to insert limit history: %w", err)
	}
	return nil
}

func (s *Service) insertAudit(tx *sql.Tx, action, schoolID, actor string, payload map[string]interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal audit payload: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO audit_logs (id, action, school_id, actor, payload, ts)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), action, schoolID, actor, string(raw), s.now())
	if err != nil {
		return fmt.Errorf("failed to insert audit row: %w", err)
	}
	return nil
}
