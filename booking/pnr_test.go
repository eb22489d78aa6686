package booking

import "testing"

func TestNormalizePNR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ab-12c3", "AB12C3"},
		{"ab-12", "AB12"},
		{"  x y z 1 2 3 ", "XYZ123"},
		{"abc123", "ABC123"},
		{"ABC123", "ABC123"},
		{"!@#$%^", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizePNR(c.in); got != c.want {
			t.Errorf("NormalizePNR(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidPNR(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"ab-12c3", true},
		{"ab-12", false},
		{"ABC123", true},
		{"ABC1234", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidPNR(c.in); got != c.want {
			t.Errorf("ValidPNR(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
