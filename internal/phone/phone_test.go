package phone

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
	}{
		{
			name:     "tajik mobile with country code",
			input:    "+992900000000",
			expected: "+992900000000",
		},
		{
			name:     "tajik mobile with spaces",
			input:    "+992 90 000 00 00",
			expected: "+992900000000",
		},
		{
			name:     "international without plus gets prefixed",
			input:    "992900000000",
			expected: "+992900000000",
		},
		{
			name:     "ten digits without plus gets prefixed",
			input:    "9044885555",
			expected: "+9044885555",
		},
		{
			name:     "local seven digit number passes through",
			input:    "4885555",
			expected: "4885555",
		},
		{
			name:     "dashes and parentheses stripped",
			input:    "+992 (48) 888-85-55",
			expected: "+992488888555",
		},
		{
			name:     "leading and trailing spaces",
			input:    "  +992900000000  ",
			expected: "+992900000000",
		},
		{
			name:        "too short",
			input:       "12345",
			shouldError: true,
		},
		{
			name:        "letters only",
			input:       "abc",
			shouldError: true,
		},
		{
			name:        "empty string",
			input:       "",
			shouldError: true,
		},
		{
			name:        "blank string",
			input:       "   ",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Errorf("Normalize(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPretty(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "valid international number is formatted",
			input:    "+14155552671",
			expected: "+1 415-555-2671",
		},
		{
			name:     "local number falls back to canonical form",
			input:    "4885555",
			expected: "4885555",
		},
		{
			name:     "implausible number falls back to canonical form",
			input:    "+1234567",
			expected: "+1234567",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pretty(tt.input); got != tt.expected {
				t.Errorf("Pretty(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
