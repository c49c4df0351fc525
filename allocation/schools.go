// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel bucket for users whose email domain matches no school.
const (
	UnallocatedSchoolID   = "0"
	UnallocatedSchoolName = "Usuários Sem Escola Definida"
)

// Expected column headers in the schools reference CSV.
const (
	colSchoolID    = "ID da Escola"
	colSchoolName  = "Nome da Escola"
	colSchoolEmail = "E-mail da Escola"
)

var ErrMissingColumns = errors.New("schools CSV is missing required columns")

// SchoolRef is one row of the schools reference base.
type SchoolRef struct {
	ID     string
	Name   string
	Domain string
}

// LoadSchools parses the ;-separated schools reference CSV. The file may
// start with a UTF-8 BOM. The e-mail column may hold a full address or a
// bare domain; either way the lowercased domain is extracted. Duplicate
// school ids keep the first occurrence.
func LoadSchools(r io.Reader) ([]SchoolRef, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read schools CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	idCol, okID := idx[colSchoolID]
	nameCol, okName := idx[colSchoolName]
	emailCol, okEmail := idx[colSchoolEmail]
	if !okID || !okName || !okEmail {
		return nil, ErrMissingColumns
	}

	var schools []SchoolRef
	seen := map[string]bool{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read schools CSV: %w", err)
		}
		if idCol >= len(record) || nameCol >= len(record) || emailCol >= len(record) {
			continue
		}

		id := strings.TrimSpace(record[idCol])
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		schools = append(schools, SchoolRef{
			ID:     id,
			Name:   strings.TrimSpace(record[nameCol]),
			Domain: extractDomain(record[emailCol]),
		})
	}

	return schools, nil
}

// DomainMap builds the domain → school lookup; the first school with a
// given domain wins, which keeps the mapping unambiguous when several
// schools share a generic domain.
func DomainMap(schools []SchoolRef) map[string]SchoolRef {
	m := make(map[string]SchoolRef, len(schools))
	for _, s := range schools {
		if s.Domain == "" {
			continue
		}
		if _, ok := m[s.Domain]; !ok {
			m[s.Domain] = s
		}
	}
	return m
}

func extractDomain(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if at := strings.LastIndex(email, "@"); at >= 0 {
		return email[at+1:]
	}
	return email
}
