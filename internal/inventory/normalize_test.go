package inventory

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chicken", "Chicken"},
		{"Chicken ", "Chicken"},
		{" chicken", "Chicken"},
		{"  SWEET POTATO  ", "Sweet potato"},
		{"éclair", "Éclair"},
		{"", ""},
		{"   ", ""},
		{"p", "P"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	if Normalize("Chicken ") != Normalize(" chicken") {
		t.Errorf("expected %q and %q to normalize identically", "Chicken ", " chicken")
	}
}
