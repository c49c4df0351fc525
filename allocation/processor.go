// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import "strings"

// RawUser is one user record as reported by the external collector.
type RawUser struct {
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Funcao string `json:"funcao"`
}

// RawMetrics is the collector payload: top-level usage metrics plus the
// full user list.
type RawMetrics struct {
	Timestamp       int64     `json:"timestamp"`
	DataAtualizacao string    `json:"data_atualizacao"`
	HoraAtualizacao string    `json:"hora_atualizacao"`
	PeriodoFiltro   string    `json:"periodo_filtro"`
	DesignsCriados  int       `json:"designs_criados"`
	TotalPessoas    int       `json:"total_pessoas"`
	Usuarios        []RawUser `json:"usuarios"`
}

// SchoolAllocation is the per-school slice of the snapshot.
type SchoolAllocation struct {
	SchoolID      string    `json:"school_id"`
	SchoolName    string    `json:"school_name"`
	Users         []RawUser `json:"users"`
	TotalUsers    int       `json:"total_users"`
	TotalLicenses int       `json:"total_licenses"`
}

// CanvaMetrics is the metrics subset carried into the snapshot (the user
// list is dropped in favor of the per-school allocation).
type CanvaMetrics struct {
	DesignsCriados int `json:"designs_criados"`
	TotalPessoas   int `json:"total_pessoas"`
}

// Snapshot is the integrated dataset persisted after every refresh run.
type Snapshot struct {
	Timestamp             int64              `json:"timestamp"`
	DataAtualizacao       string             `json:"data_atualizacao"`
	HoraAtualizacao       string             `json:"hora_atualizacao"`
	PeriodoFiltro         string             `json:"periodo_filtro"`
	CanvaMetrics          CanvaMetrics       `json:"canva_metrics"`
	SchoolsAllocation     []SchoolAllocation `json:"schools_allocation"`
	UnallocatedUsersCount int                `json:"unallocated_users_count"`
	UnallocatedUsersList  []RawUser          `json:"unallocated_users_list"`
}

// Allocate assigns each user to the school whose domain matches the
// email's domain suffix (case-insensitive, first school wins for shared
// domains). Users with no '@' or an unmapped domain land in the sentinel
// unallocated bucket, which is always the last entry.
func Allocate(users []RawUser, schools []SchoolRef) ([]SchoolAllocation, []RawUser) {
	byID := make(map[string]*SchoolAllocation, len(schools)+1)
	ordered := make([]*SchoolAllocation, 0, len(schools)+1)

	for _, school := range schools {
		a := &SchoolAllocation{
			SchoolID:   school.ID,
			SchoolName: school.Name,
			Users:      []RawUser{},
		}
		byID[school.ID] = a
		ordered = append(ordered, a)
	}
	unallocatedBucket := &SchoolAllocation{
		SchoolID:   UnallocatedSchoolID,
		SchoolName: UnallocatedSchoolName,
		Users:      []RawUser{},
	}
	ordered = append(ordered, unallocatedBucket)

	domains := DomainMap(schools)

	var unallocated []RawUser
	for _, user := range users {
		email := strings.ToLower(strings.TrimSpace(user.Email))

		var domain string
		if at := strings.LastIndex(email, "@"); at >= 0 {
			domain = email[at+1:]
		}

		school, ok := domains[domain]
		if domain == "" || !ok || school.ID == UnallocatedSchoolID {
			unallocated = append(unallocated, user)
			unallocatedBucket.Users = append(unallocatedBucket.Users, user)
			unallocatedBucket.TotalUsers++
			continue
		}

		a := byID[school.ID]
		a.Users = append(a.Users, user)
		a.TotalUsers++
	}

	result := make([]SchoolAllocation, len(ordered))
	for i, a := range ordered {
		result[i] = *a
	}
	return result, unallocated
}

// BuildSnapshot integrates collector metrics with the per-school user
// allocation.
func BuildSnapshot(metrics RawMetrics, schools []SchoolRef) Snapshot {
	allocations, unallocated := Allocate(metrics.Usuarios, schools)
	if unallocated == nil {
		unallocated = []RawUser{}
	}

	return Snapshot{
		Timestamp:       metrics.Timestamp,
		DataAtualizacao: metrics.DataAtualizacao,
		HoraAtualizacao: metrics.HoraAtualizacao,
		PeriodoFiltro:   metrics.PeriodoFiltro,
		CanvaMetrics: CanvaMetrics{
			DesignsCriados: metrics.DesignsCriados,
			TotalPessoas:   metrics.TotalPessoas,
		},
		SchoolsAllocation:     allocations,
		UnallocatedUsersCount: len(unallocated),
		UnallocatedUsersList:  unallocated,
	}
}
