package booking

import (
	"context"
	"net/http"
	"time"

	"tripdesk/db"
	"tripdesk/models"
	"tripdesk/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// approvalTransition returns the coupled status pair for a verdict.
// Approving confirms the booking, rejecting cancels it; these are the
// only two operations that ever touch both fields together.
func approvalTransition(approve bool) (approvalStatus, status string) {
	if approve {
		return models.ApprovalApproved, models.BookingStatusConfirmed
	}
	return models.ApprovalRejected, models.BookingStatusCancelled
}

func ApproveBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setApproval(w, r, ps, true)
}

func RejectBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setApproval(w, r, ps, false)
}

func setApproval(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, approve bool) {
	approvalStatus, status := approvalTransition(approve)

	res, err := db.BookingsCollection.UpdateOne(
		context.TODO(),
		bson.M{"bookingid": ps.ByName("bookingid")},
		bson.M{"$set": bson.M{
			"approvalStatus": approvalStatus,
			"status":         status,
			"updatedAt":      time.Now().UTC(),
		}},
	)
	if err != nil {
		http.Error(w, "Failed to update booking", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"approvalStatus": approvalStatus,
		"status":         status,
	}, "Booking "+approvalStatus, nil)
}
