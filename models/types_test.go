// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "testing"

func TestGenerateBadge(t *testing.T) {
	tests := []struct {
		name     string
		used     int
		limit    int
		wantTone string
		wantText string
	}{
		{"no licenses", 0, 2, "gray", "0/2 Licenças"},
		{"partial", 1, 2, "blue", "1/2 Licenças"},
		{"full", 2, 2, "green", "2/2 Licenças (Completa)"},
		{"excess", 3, 2, "red", "3/2 Licenças (Excesso)"},
		{"zero limit unused", 0, 0, "gray", "0/0 Licenças"},
		{"zero limit used", 1, 0, "red", "1/0 Licenças (Excesso)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			badge := GenerateBadge(tt.used, tt.limit)
			if badge.Tone != tt.wantTone {
				t.Errorf("Tone = %q, want %q", badge.Tone, tt.wantTone)
			}
			if badge.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", badge.Text, tt.wantText)
			}
		})
	}
}

func TestUsageStatus(t *testing.T) {
	tests := []struct {
		name  string
		used  int
		limit int
		want  string
	}{
		{"empty", 0, 2, SchoolStatusEmpty},
		{"partial", 1, 2, SchoolStatusPartial},
		{"full", 2, 2, SchoolStatusFull},
		{"excess", 3, 2, SchoolStatusExcess},
		{"zero limit unused", 0, 0, SchoolStatusEmpty},
		{"zero limit used", 1, 0, SchoolStatusExcess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsageStatus(tt.used, tt.limit); got != tt.want {
				t.Errorf("UsageStatus(%d, %d) = %q, want %q", tt.used, tt.limit, got, tt.want)
			}
		})
	}
}
