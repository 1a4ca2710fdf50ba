package casefold

import (
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Short strings are only lowercased
		{"", ""},
		{"a", "a"},
		{"A", "a"},

		// Already folded
		{"id", "id"},
		{"user_name", "user_name"},

		// CamelCase
		{"UserName", "user_name"},
		{"userName", "user_name"},
		{"totalCents", "total_cents"},
		{"aB", "a_b"},

		// Capital runs stay uppercase except the final rune
		{"HTTPServer", "H_T_T_P_server"},
		{"ID", "I_d"},
		{"userID", "user_I_d"},

		// Separator already present before a capital
		{"Snake_Case", "snake_case"},
		{"price_Cents", "price_cents"},

		// Non-ASCII
		{"ÉtéÀ", "été_à"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Fold(tt.input)
			if result != tt.expected {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFolderSeparator(t *testing.T) {
	tests := []struct {
		sep      rune
		input    string
		expected string
	}{
		{'-', "UserName", "user-name"},
		{'-', "Snake-Case", "snake-case"},
		{'.', "orderItemID", "order.item.I.d"},
		{0, "UserName", "user_name"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sep)+tt.input, func(t *testing.T) {
			result := Folder{Separator: tt.sep}.Fold(tt.input)
			if result != tt.expected {
				t.Errorf("Folder{%q}.Fold(%q) = %q, want %q", tt.sep, tt.input, result, tt.expected)
			}
		})
	}
}

func TestFoldIsStableOnOutput(t *testing.T) {
	for _, s := range []string{"user_name", "total_cents", "a", "config_value"} {
		if got := Fold(Fold(s)); got != Fold(s) {
			t.Errorf("Fold(Fold(%q)) = %q, want %q", s, got, Fold(s))
		}
	}
}
