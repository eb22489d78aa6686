package booking

import (
	"testing"

	"tripdesk/models"
)

func TestApprovalTransition(t *testing.T) {
	approval, status := approvalTransition(true)
	if approval != models.ApprovalApproved || status != models.BookingStatusConfirmed {
		t.Errorf("approve: got (%q, %q), want (approved, confirmed)", approval, status)
	}

	approval, status = approvalTransition(false)
	if approval != models.ApprovalRejected || status != models.BookingStatusCancelled {
		t.Errorf("reject: got (%q, %q), want (rejected, cancelled)", approval, status)
	}
}
