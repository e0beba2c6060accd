package v1

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"empty", "", "Password is required"},
		{"too short", "abc", "at least 8 characters"},
		{"no uppercase", "abcdefg1!", "uppercase"},
		{"no lowercase", "ABCDEFG1!", "lowercase"},
		{"no digit", "Abcdefgh!", "number"},
		{"no special", "Abcdefg1", "special character"},
		{"valid", "Abcdefg1!", ""},
		{"valid with other special", "Passw0rd,", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidatePassword(tc.password)
			if tc.wantMsg == "" {
				if got != "" {
					t.Errorf("ValidatePassword(%q) = %q, want valid", tc.password, got)
				}
				return
			}
			if !strings.Contains(got, tc.wantMsg) {
				t.Errorf("ValidatePassword(%q) = %q, want message containing %q", tc.password, got, tc.wantMsg)
			}
		})
	}
}

func TestValidatePasswordRuleOrder(t *testing.T) {
	// A short password violating several rules reports length first.
	got := ValidatePassword("a")
	if !strings.Contains(got, "at least 8 characters") {
		t.Errorf("ValidatePassword(\"a\") = %q, want length message first", got)
	}
}
