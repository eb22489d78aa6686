package booking

import (
	"testing"

	"tripdesk/middleware"
	"tripdesk/models"
)

func TestBookingOwner(t *testing.T) {
	admin := &middleware.Claims{UserID: "uAdmin", Role: []string{"admin"}}
	agent := &middleware.Claims{UserID: "uAgent", Role: []string{"agent"}}

	cases := []struct {
		name      string
		claims    *middleware.Claims
		requested string
		want      string
	}{
		{"admin assigns someone else", admin, "uOther", "uOther"},
		{"admin omits agent", admin, "", "uAdmin"},
		{"agent cannot assign someone else", agent, "uOther", "uAgent"},
		{"agent omits agent", agent, "", "uAgent"},
	}
	for _, c := range cases {
		if got := bookingOwner(c.claims, c.requested); got != c.want {
			t.Errorf("%s: bookingOwner() = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestValidBookingStatuses(t *testing.T) {
	for _, ok := range []string{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
	} {
		if !validBookingStatuses[ok] {
			t.Errorf("status %q should be accepted", ok)
		}
	}
	for _, bad := range []string{"", "approved", "new", "PENDING", "done"} {
		if validBookingStatuses[bad] {
			t.Errorf("status %q should be rejected", bad)
		}
	}
}
