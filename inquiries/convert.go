package inquiries

import (
	"context"
	"log"
	"net/http"
	"time"

	"tripdesk/db"
	"tripdesk/middleware"
	"tripdesk/models"
	"tripdesk/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ConvertInquiry turns an inquiry into a pending booking owned by the
// caller. The inquiry is marked converted; it is not deleted.
func ConvertInquiry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var inq models.Inquiry
	err = db.InquiriesCollection.FindOne(r.Context(), bson.M{"inquiryid": ps.ByName("inquiryid")}).Decode(&inq)
	if err != nil {
		http.Error(w, "Inquiry not found", http.StatusNotFound)
		return
	}
	if inq.Status == models.InquiryStatusConverted {
		http.Error(w, "Inquiry already converted", http.StatusConflict)
		return
	}

	now := time.Now().UTC()
	rec := models.BookingRecord{
		BookingID:      "b" + utils.GenerateID(14),
		CustomerName:   inq.Name,
		CustomerEmail:  inq.Email,
		PackageName:    inq.Destination,
		TravelDate:     inq.TravelDate,
		Status:         models.BookingStatusPending,
		ApprovalStatus: models.ApprovalPending,
		AgentID:        claims.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := db.BookingsCollection.InsertOne(context.TODO(), rec); err != nil {
		log.Printf("conversion insert failed for %s: %v", inq.InquiryID, err)
		http.Error(w, "Failed to create booking", http.StatusInternalServerError)
		return
	}

	_, err = db.InquiriesCollection.UpdateOne(
		context.TODO(),
		bson.M{"inquiryid": inq.InquiryID},
		bson.M{"$set": bson.M{
			"status":    models.InquiryStatusConverted,
			"agent":     claims.UserID,
			"updatedAt": now,
		}},
	)
	if err != nil {
		log.Printf("failed to mark inquiry %s converted: %v", inq.InquiryID, err)
	}

	utils.SendResponse(w, http.StatusCreated, rec, "Inquiry converted to booking", nil)
}
