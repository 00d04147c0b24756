package secret

import (
	"strings"
	"testing"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short", "abc", "********"},
		{"seven chars", "1234567", "********"},
		{"eight chars", "12345678", "1234...5678"},
		{"api key", "sk-ab12cd34ef56", "sk-a...ef56"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mask(tt.in); got != tt.want {
				t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMask_NeverEqualsInput(t *testing.T) {
	for _, s := range []string{"12345678", "sk-ab12cd34ef56", strings.Repeat("x", 64)} {
		if Mask(s) == s {
			t.Errorf("Mask(%q) returned the input unchanged", s)
		}
	}
}
