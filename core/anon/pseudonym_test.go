package anon

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var pseudonymRegex = regexp.MustCompile(`^(\D+) (\d{1,3})$`)

func TestPseudonymDeterminism(t *testing.T) {
	first := Pseudonym("b7f2c1d0-0001-4a2b-9c3d-123456789abc", "course", "CS101")
	for i := 0; i < 100; i++ {
		got := Pseudonym("b7f2c1d0-0001-4a2b-9c3d-123456789abc", "course", "CS101")
		if got != first {
			t.Fatalf("Pseudonym() not deterministic: got %q, want %q", got, first)
		}
	}
}

func TestPseudonymVariesPerEntity(t *testing.T) {
	// not a hard guarantee for every pair, but these known inputs must differ
	a := Pseudonym("user-1", "course", "CS101")
	b := Pseudonym("user-1", "company", "acme")
	if a == b && Pseudonym("user-1", "course", "CS102") == a {
		t.Errorf("pseudonym does not depend on entity: %q", a)
	}
}

func TestPseudonymFormat(t *testing.T) {
	tests := []struct {
		name                          string
		userID, entityType, entityID  string
	}{
		{name: "simple", userID: "user-1", entityType: "course", entityID: "CS101"},
		{name: "uuid user", userID: "b7f2c1d0-0001-4a2b-9c3d-123456789abc", entityType: "company", entityID: "acme"},
		{name: "empty entity", userID: "user-1"},
		{name: "unicode", userID: "утилизатор", entityType: "course", entityID: "数学101"},
		{name: "emoji", userID: "user-1", entityType: "🔥", entityID: "🎓🎓🎓"},
		{name: "unusual chars", userID: "user-1", entityType: "course", entityID: `";DROP TABLE--\x00`},
		{name: "very long", userID: strings.Repeat("x", 10000), entityType: "course", entityID: strings.Repeat("y", 10000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pseudonym(tt.userID, tt.entityType, tt.entityID)
			if got == "" {
				t.Fatal("Pseudonym() returned an empty string")
			}
			m := pseudonymRegex.FindStringSubmatch(got)
			if m == nil {
				t.Fatalf("Pseudonym() = %q, want \"{stem} {number}\"", got)
			}
			n, err := strconv.Atoi(m[2])
			if err != nil {
				t.Fatalf("Pseudonym() suffix %q not a number", m[2])
			}
			if n < 1 || n > 999 {
				t.Errorf("Pseudonym() suffix = %d, want 1 <= n <= 999", n)
			}
		})
	}
}

func TestPseudonymSentinel(t *testing.T) {
	if got := Pseudonym("", "course", "CS101"); got != SentinelName {
		t.Errorf("Pseudonym() with empty userID = %q, want %q", got, SentinelName)
	}
}
