package helpers

import (
	"strings"
	"testing"
)

func TestGenerateCouponCodeLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := GenerateCouponCode()
		if len(code) != 12 {
			t.Fatalf("expected 12 characters, got %d (%q)", len(code), code)
		}
		for _, r := range code {
			if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", r) {
				t.Fatalf("unexpected character %q in code %q", r, code)
			}
		}
	}
}

func TestGenerateCouponCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateCouponCode()] = true
	}
	if len(seen) < 100 {
		t.Errorf("expected 100 distinct codes, got %d", len(seen))
	}
}

func TestOnlyDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123.456.789-09", "12345678909"},
		{"12.345.678/0001-95", "12345678000195"},
		{"(11) 98765-4321", "11987654321"},
		{"", ""},
		{"abc", ""},
	}
	for _, tc := range cases {
		if got := OnlyDigits(tc.in); got != tc.want {
			t.Errorf("OnlyDigits(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
