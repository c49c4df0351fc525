// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStaffExists   = errors.New("usuário já existe")
	ErrStaffNotFound = errors.New("usuário não encontrado")
	ErrInvalidRole   = errors.New("perfil inválido")
)

// StaffRecord is a credential store row, without the password material.
type StaffRecord struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ListStaff returns all staff records sorted by username.
func (s *Service) ListStaff() ([]StaffRecord, error) {
	rows, err := s.db.Query(`SELECT username, name, role FROM staff ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	records := []StaffRecord{}
	for rows.Next() {
		var rec StaffRecord
		if err := rows.Scan(&rec.Username, &rec.Name, &rec.Role); err != nil {
			return nil, fmt.Errorf("failed to scan staff row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CreateStaff adds a credential record. The role must map to a canonical
// role; the username is stored lowercased.
func (s *Service) CreateStaff(username, name, password, role string) error {
	username = strings.ToLower(strings.TrimSpace(username))

	canonical, ok := NormalizeRole(role)
	if !ok {
		return ErrInvalidRole
	}

	hash, salt, err := HashPassword(password)
	if err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM staff WHERE username = $1`, username).Scan(&count); err != nil {
		return fmt.Errorf("failed to query staff: %w", err)
	}
	if count > 0 {
		return ErrStaffExists
	}

	_, err = s.db.Exec(`
		INSERT INTO staff (username, name, role, password_hash, password_salt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, username, name, canonical, hash, salt, s.now())
	if err != nil {
		return fmt.Errorf("failed to insert staff: %w", err)
	}
	return nil
}

// UpdatePassword replaces a user's password hash and salt.
func (s *Service) UpdatePassword(username, newPassword string) error {
	username = strings.ToLower(strings.TrimSpace(username))

	hash, salt, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE staff SET password_hash = $1, password_salt = $2 WHERE username = $3
	`, hash, salt, username)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaffNotFound
	}
	return nil
}

// UpdateRole changes a user's role to the canonical form of newRole.
func (s *Service) UpdateRole(username, newRole string) error {
	username = strings.ToLower(strings.TrimSpace(username))

	canonical, ok := NormalizeRole(newRole)
	if !ok {
		return ErrInvalidRole
	}

	res, err := s.db.Exec(`UPDATE staff SET role = $1 WHERE username = $2`, canonical, username)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaffNotFound
	}
	return nil
}

// GetStaff looks up one credential record.
func (s *Service) GetStaff(username string) (StaffRecord, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	var rec StaffRecord
	err := s.db.QueryRow(`SELECT username, name, role FROM staff WHERE username = $1`, username).
		Scan(&rec.Username, &rec.Name, &rec.Role)
	if err == sql.ErrNoRows {
		return StaffRecord{}, ErrStaffNotFound
	}
	if err != nil {
		return StaffRecord{}, fmt.Errorf("failed to query staff: %w", err)
	}
	return rec, nil
}
