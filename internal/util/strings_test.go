package util

import (
	"reflect"
	"testing"
)

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "Wallet",
			expected: []string{"Wallet"},
		},
		{
			name:     "multiple values",
			input:    "Wallet,SwapAnalysisInput,User",
			expected: []string{"Wallet", "SwapAnalysisInput", "User"},
		},
		{
			name:     "with whitespace",
			input:    " Wallet , User ",
			expected: []string{"Wallet", "User"},
		},
		{
			name:     "trailing comma",
			input:    "Wallet,User,",
			expected: []string{"Wallet", "User"},
		},
		{
			name:     "multiple commas",
			input:    "Wallet,,User",
			expected: []string{"Wallet", "User"},
		},
		{
			name:     "only commas",
			input:    ",,,",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplitCSV(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("SplitCSV(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Wallet", `"Wallet"`},
		{"with space", "my table", `"my table"`},
		{"embedded quote", `we"ird`, `"we""ird"`},
		{"empty", "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteIdent(tt.input); got != tt.expected {
				t.Errorf("QuoteIdent(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}
