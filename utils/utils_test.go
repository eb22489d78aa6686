package utils

import "testing"

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-05-01", "2024-05-01"},
		{"2024-05-01T10:30:00Z", "2024-05-01"},
		{"01/05/2024", "2024-05-01"},
		{"", "-"},
		{"not a date", "-"},
		{"  ", "-"},
	}
	for _, c := range cases {
		if got := FormatDate(c.in); got != c.want {
			t.Errorf("FormatDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID(14)
	if len(id) != 14 {
		t.Fatalf("expected length 14, got %d", len(id))
	}
	if GenerateID(14) == id {
		// Technically possible, practically a generator bug.
		t.Error("two generated IDs collided")
	}
}
