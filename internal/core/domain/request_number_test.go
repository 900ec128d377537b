package domain

import (
	"errors"
	"testing"
)

func TestCategoryPrefix(t *testing.T) {
	tests := []struct {
		category Category
		want     string
		wantErr  bool
	}{
		{CategoryAstana, "AST", false},
		{CategoryIntercity, "INT", false},
		{"", "", true},
		{"international", "", true},
		{"Astana", "", true},
	}

	for _, tt := range tests {
		got, err := tt.category.Prefix()
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidCategory) {
				t.Errorf("Prefix(%q): expected ErrInvalidCategory, got %v", tt.category, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Prefix(%q): unexpected error %v", tt.category, err)
		}
		if got != tt.want {
			t.Errorf("Prefix(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestFormatRequestNumber(t *testing.T) {
	tests := []struct {
		prefix string
		year   int
		seq    int
		want   string
	}{
		{"AST", 2025, 1, "AST-2025-001"},
		{"AST", 2025, 14, "AST-2025-014"},
		{"INT", 2024, 999, "INT-2024-999"},
		{"INT", 2024, 1000, "INT-2024-1000"},
	}

	for _, tt := range tests {
		if got := FormatRequestNumber(tt.prefix, tt.year, tt.seq); got != tt.want {
			t.Errorf("FormatRequestNumber(%q, %d, %d) = %q, want %q", tt.prefix, tt.year, tt.seq, got, tt.want)
		}
	}
}
