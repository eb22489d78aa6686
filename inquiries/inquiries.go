package inquiries

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tripdesk/db"
	"tripdesk/livefeed"
	"tripdesk/models"
	"tripdesk/relay"
	"tripdesk/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validStatuses = map[string]bool{
	models.InquiryStatusNew:       true,
	models.InquiryStatusContacted: true,
	models.InquiryStatusConverted: true,
	models.InquiryStatusClosed:    true,
}

// CreateInquiry accepts an inbound customer inquiry from the public
// site. After the insert commits, the event is relayed to the webhook
// worker and the live dashboard feed; neither outcome reaches the
// customer's response.
func CreateInquiry(hub *livefeed.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var inq models.Inquiry
		if err := json.NewDecoder(r.Body).Decode(&inq); err != nil {
			http.Error(w, "Invalid input", http.StatusBadRequest)
			return
		}
		if inq.Name == "" || inq.Email == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "name and email are required")
			return
		}

		inq.InquiryID = "q" + utils.GenerateID(12)
		inq.Status = models.InquiryStatusNew
		inq.AgentID = ""
		inq.CreatedAt = time.Now().UTC()
		inq.UpdatedAt = inq.CreatedAt

		if _, err := db.InquiriesCollection.InsertOne(context.TODO(), inq); err != nil {
			log.Printf("inquiry insert failed: %v", err)
			http.Error(w, "Failed to create inquiry", http.StatusInternalServerError)
			return
		}

		relay.Emit(relay.InquiryEvent{
			Event:       "inquiry-created",
			InquiryID:   inq.InquiryID,
			Name:        inq.Name,
			Email:       inq.Email,
			Phone:       inq.Phone,
			Destination: inq.Destination,
			Message:     inq.Message,
			CreatedAt:   inq.CreatedAt.Unix(),
		})

		if note, err := json.Marshal(utils.M{"type": "inquiry-created", "inquiry": inq}); err == nil {
			hub.Broadcast(note)
		}

		utils.SendResponse(w, http.StatusCreated, inq, "Inquiry received", nil)
	}
}

func GetInquiries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := db.InquiriesCollection.Find(r.Context(), filter, opts)
	if err != nil {
		http.Error(w, "Failed to fetch inquiries", http.StatusInternalServerError)
		return
	}
	defer cur.Close(r.Context())

	inquiries := []models.Inquiry{}
	if err := cur.All(r.Context(), &inquiries); err != nil {
		http.Error(w, "Failed to decode inquiries", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, inquiries)
}

func GetInquiry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var inq models.Inquiry
	err := db.InquiriesCollection.FindOne(r.Context(), bson.M{"inquiryid": ps.ByName("inquiryid")}).Decode(&inq)
	if err != nil {
		http.Error(w, "Inquiry not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, inq)
}

func UpdateInquiryStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || !validStatuses[input.Status] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	res, err := db.InquiriesCollection.UpdateOne(
		context.TODO(),
		bson.M{"inquiryid": ps.ByName("inquiryid")},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		http.Error(w, "Failed to update inquiry", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Inquiry not found", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"status": input.Status}, "Inquiry updated", nil)
}

// AssignInquiry hands an inquiry to an agent. Admin only.
func AssignInquiry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Agent string `json:"agent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Agent == "" {
		http.Error(w, "agent is required", http.StatusBadRequest)
		return
	}

	var agent models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": input.Agent, "active": true}).Decode(&agent); err != nil {
		http.Error(w, "Agent not found", http.StatusNotFound)
		return
	}

	res, err := db.InquiriesCollection.UpdateOne(
		context.TODO(),
		bson.M{"inquiryid": ps.ByName("inquiryid")},
		bson.M{"$set": bson.M{"agent": agent.UserID, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		http.Error(w, "Failed to assign inquiry", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Inquiry not found", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"agent": agent.UserID}, "Inquiry assigned", nil)
}

func DeleteInquiry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.InquiriesCollection.DeleteOne(context.TODO(), bson.M{"inquiryid": ps.ByName("inquiryid")})
	if err != nil {
		http.Error(w, "Failed to delete inquiry", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Inquiry not found", http.StatusNotFound)
		return
	}
	utils.SendResponse(w, http.StatusOK, nil, "Inquiry deleted", nil)
}
