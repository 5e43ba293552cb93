package validation

import (
	"regexp"
	"strings"
	"testing"
)

func TestIsValidUsername(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"abcd", true},
		{"John Doe", true},
		{"user 42 x", true},
		{strings.Repeat("a", 20), true},
		{"abc", false},
		{strings.Repeat("a", 21), false},
		{"two  spaces", false},
		{"bad_char", false},
		{"tab\there", false},
		{"ñandú", false},
		{"", false},
		{" lead", true},
		{"trail ", true},
	}
	for _, tc := range cases {
		if got := IsValidUsername(tc.in); got != tc.want {
			t.Fatalf("IsValidUsername(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// Compara contra la definición declarativa: largo, regex y sin espacios dobles.
func TestIsValidUsername_MatchesDefinition(t *testing.T) {
	re := regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
	alphabet := []byte("aZ9 _-")
	var gen func(prefix []byte, depth int)
	gen = func(prefix []byte, depth int) {
		s := string(prefix)
		want := len(s) >= 4 && len(s) <= 20 && re.MatchString(s) && !strings.Contains(s, "  ")
		if got := IsValidUsername(s); got != want {
			t.Fatalf("IsValidUsername(%q) = %v, want %v", s, got, want)
		}
		if depth == 0 {
			return
		}
		for _, c := range alphabet {
			gen(append(prefix, c), depth-1)
		}
	}
	gen(nil, 5)
}

func TestIsValidName(t *testing.T) {
	if !IsValidName("Rex") || !IsValidName("A") || !IsValidName("Mr Whiskers The 3rd and a very long name") {
		t.Fatalf("expected simple names to be valid")
	}
	if IsValidName("") || IsValidName("Rex,Jr") || IsValidName("Big  Dog") {
		t.Fatalf("expected empty, comma and double space names to be invalid")
	}
	if IsValidBreed("Golden  Retriever") || !IsValidBreed("Golden Retriever") {
		t.Fatalf("breed must follow the name rule")
	}
}

func TestIsValidPassword(t *testing.T) {
	if IsValidPassword("") {
		t.Fatalf("empty password must be invalid")
	}
	for _, p := range []string{"x", "with,comma", "  spaced  ", "admin123"} {
		if !IsValidPassword(p) {
			t.Fatalf("expected %q to be valid", p)
		}
	}
}
