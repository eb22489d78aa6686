package booking

import (
	"context"
	"log"
	"net/http"

	"tripdesk/db"
	"tripdesk/middleware"
	"tripdesk/models"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// DownloadBookingPDF renders the styled summary document for one
// booking. Existence and ownership are checked here, before the
// normalizer or renderer ever run.
func DownloadBookingPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("bookingid")

	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var rec models.BookingRecord
	err = db.BookingsCollection.FindOne(context.TODO(), bson.M{"bookingid": bookingID}).Decode(&rec)
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	if !canAccess(claims, &rec) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	view := NormalizeBooking(&rec)

	// Join the owning agent's contact details when one is assigned.
	if rec.AgentID != "" {
		var agent models.User
		if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": rec.AgentID}).Decode(&agent); err == nil {
			view.AgentName = agent.Name
			view.AgentEmail = agent.Email
		}
	}

	out, err := RenderBookingPDF(view)
	if err != nil {
		log.Printf("booking pdf render failed for %s: %v", bookingID, err)
		http.Error(w, "Failed to generate document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+bookingID+".pdf")
	w.Write(out)
}
