package utils

import (
	"reflect"
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
}

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sunset", "sunset"},
		{"  Hawaii, ", "hawaii"},
		{"mother-in-law", "mother-in-law"},
		{"'quoted'", "quoted"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTerm(tt.in); got != tt.want {
			t.Errorf("NormalizeTerm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLocationTokens(t *testing.T) {
	got := LocationTokens("Central Park, New York")
	want := []string{"central", "park", "new", "york"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LocationTokens = %v, want %v", got, want)
	}
}
