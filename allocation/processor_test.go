// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAllocate(t *testing.T) {
	schools := []SchoolRef{
		{ID: "101", Name: "Maple Bear Pinheiros", Domain: "mbpinheiros.com.br"},
		{ID: "102", Name: "Maple Bear Moema", Domain: "mbmoema.com.br"},
	}

	users := []RawUser{
		{Nome: "Ana", Email: "ana@mbpinheiros.com.br", Funcao: "Professor"},
		{Nome: "Bruno", Email: "BRUNO@MBPINHEIROS.COM.BR", Funcao: "Coordenador"},
		{Nome: "Carla", Email: "carla@mbmoema.com.br", Funcao: "Professor"},
		{Nome: "Davi", Email: "davi@gmail.com", Funcao: "Professor"},
		{Nome: "Sem Email", Email: "sem-arroba", Funcao: "Professor"},
	}

	allocations, unallocated := Allocate(users, schools)

	// One bucket per school plus the sentinel, in reference order
	if len(allocations) != 3 {
		t.Fatalf("Expected 3 buckets, got %d", len(allocations))
	}
	last := allocations[len(allocations)-1]
	if last.SchoolID != UnallocatedSchoolID || last.SchoolName != UnallocatedSchoolName {
		t.Errorf("Last bucket = %q/%q, want sentinel", last.SchoolID, last.SchoolName)
	}

	if allocations[0].TotalUsers != 2 {
		t.Errorf("Pinheiros users = %d, want 2 (case-insensitive match)", allocations[0].TotalUsers)
	}
	if allocations[1].TotalUsers != 1 {
		t.Errorf("Moema users = %d, want 1", allocations[1].TotalUsers)
	}

	if len(unallocated) != 2 {
		t.Fatalf("Unallocated = %d, want 2", len(unallocated))
	}
	if last.TotalUsers != 2 {
		t.Errorf("Sentinel bucket TotalUsers = %d, want 2", last.TotalUsers)
	}
	if unallocated[0].Nome != "Davi" || unallocated[1].Nome != "Sem Email" {
		t.Errorf("Unallocated = %+v", unallocated)
	}
}

func TestAllocateEmptyInputs(t *testing.T) {
	allocations, unallocated := Allocate(nil, nil)
	if len(allocations) != 1 {
		t.Fatalf("Expected sentinel bucket only, got %d buckets", len(allocations))
	}
	if allocations[0].SchoolID != UnallocatedSchoolID {
		t.Errorf("Only bucket = %q, want sentinel", allocations[0].SchoolID)
	}
	if len(unallocated) != 0 {
		t.Errorf("Unallocated = %d, want 0", len(unallocated))
	}
}

func TestBuildSnapshot(t *testing.T) {
	metrics := RawMetrics{
		Timestamp:       1748800000,
		DataAtualizacao: "01/06/2025",
		HoraAtualizacao: "06:00",
		PeriodoFiltro:   "Últimos 30 dias",
		DesignsCriados:  1234,
		TotalPessoas:    2,
		Usuarios: []RawUser{
			{Nome: "Ana", Email: "ana@escola.com.br"},
			{Nome: "Davi", Email: "davi@gmail.com"},
		},
	}
	schools := []SchoolRef{{ID: "101", Name: "Escola", Domain: "escola.com.br"}}

	snapshot := BuildSnapshot(metrics, schools)

	if snapshot.Timestamp != metrics.Timestamp || snapshot.DataAtualizacao != "01/06/2025" {
		t.Errorf("Metrics header not carried over: %+v", snapshot)
	}
	if snapshot.CanvaMetrics.DesignsCriados != 1234 || snapshot.CanvaMetrics.TotalPessoas != 2 {
		t.Errorf("CanvaMetrics = %+v", snapshot.CanvaMetrics)
	}
	if snapshot.UnallocatedUsersCount != 1 {
		t.Errorf("UnallocatedUsersCount = %d, want 1", snapshot.UnallocatedUsersCount)
	}
	if len(snapshot.SchoolsAllocation) != 2 {
		t.Errorf("SchoolsAllocation buckets = %d, want 2", len(snapshot.SchoolsAllocation))
	}

	// The persisted shape is consumed by the dashboard; keys must be stable
	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	for _, key := range []string{
		`"canva_metrics"`, `"schools_allocation"`,
		`"unallocated_users_count"`, `"unallocated_users_list"`,
		`"data_atualizacao"`, `"periodo_filtro"`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("Snapshot JSON missing key %s", key)
		}
	}
}
