package booking

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"tripdesk/db"
	"tripdesk/middleware"
	"tripdesk/models"
	"tripdesk/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validBookingStatuses = map[string]bool{
	models.BookingStatusPending:   true,
	models.BookingStatusConfirmed: true,
	models.BookingStatusCancelled: true,
}

// bookingOwner resolves the owning agent for a new booking. Only
// admins may stamp someone else; everyone else owns what they create.
func bookingOwner(claims *middleware.Claims, requested string) string {
	if requested != "" && utils.Contains(claims.Role, "admin") {
		return requested
	}
	return claims.UserID
}

// canAccess implements the ownership rule: admins see everything,
// agents only the bookings assigned to them.
func canAccess(claims *middleware.Claims, rec *models.BookingRecord) bool {
	if utils.Contains(claims.Role, "admin") {
		return true
	}
	return rec.AgentID != "" && rec.AgentID == claims.UserID
}

func fetchBooking(ctx context.Context, bookingID string) (*models.BookingRecord, error) {
	var rec models.BookingRecord
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var rec models.BookingRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if rec.CustomerName == "" || rec.CustomerEmail == "" || rec.PackageName == "" || rec.TravelDate == "" {
		http.Error(w, "customerName, customerEmail, package and date are required", http.StatusBadRequest)
		return
	}

	if rec.PNR != "" {
		if !ValidPNR(rec.PNR) {
			http.Error(w, "Invalid PNR", http.StatusBadRequest)
			return
		}
		rec.PNR = NormalizePNR(rec.PNR)
	}

	rec.BookingID = "b" + utils.GenerateID(14)
	rec.AgentID = bookingOwner(claims, rec.AgentID)
	rec.Status = models.BookingStatusPending
	rec.ApprovalStatus = models.ApprovalPending
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt

	// Check for BookingID collisions
	exists := db.BookingsCollection.FindOne(context.TODO(), bson.M{"bookingid": rec.BookingID}).Err()
	if exists == nil {
		http.Error(w, "Booking ID collision, try again", http.StatusInternalServerError)
		return
	}

	if _, err := db.BookingsCollection.InsertOne(context.TODO(), rec); err != nil {
		log.Printf("booking insert failed: %v", err)
		http.Error(w, "Failed to create booking", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusCreated, rec, "Booking created", nil)
}

func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rec, err := fetchBooking(r.Context(), ps.ByName("bookingid"))
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}
	if !canAccess(claims, rec) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, rec)
}

func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := bson.M{}
	if !utils.Contains(claims.Role, "admin") {
		filter["agent"] = claims.UserID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := db.BookingsCollection.Find(r.Context(), filter, opts)
	if err != nil {
		http.Error(w, "Failed to fetch bookings", http.StatusInternalServerError)
		return
	}
	defer cur.Close(r.Context())

	bookings := []models.BookingRecord{}
	if err := cur.All(r.Context(), &bookings); err != nil {
		http.Error(w, "Failed to decode bookings", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// bookingUpdate mirrors the updatable fields of a booking. Pointer
// fields distinguish "absent from payload" from "set to empty": a
// section that arrives replaces the stored one wholesale, a section
// that does not arrive is left untouched.
type bookingUpdate struct {
	CustomerName    *string                       `json:"customerName"`
	CustomerEmail   *string                       `json:"customerEmail"`
	PackageName     *string                       `json:"package"`
	TravelDate      *string                       `json:"date"`
	Status          *string                       `json:"status"`
	AgentID         *string                       `json:"agent"`
	PNR             *string                       `json:"pnr"`
	FlightClass     *string                       `json:"flightClass"`
	Flight          *models.FlightSection         `json:"flight"`
	Flights         *models.FlightsSection        `json:"flights"`
	Hotel           *models.HotelStay             `json:"hotel"`
	Hotels          *[]models.HotelStay           `json:"hotels"`
	Visa            *models.VisaPassenger         `json:"visa"`
	Visas           *models.VisaList              `json:"visas"`
	Transport       *models.TransportSection      `json:"transport"`
	Transportation  *models.TransportationSection `json:"transportation"`
	Pricing         *models.PricingSection        `json:"pricing"`
	Costing         *models.CostingSection        `json:"costing"`
	Payment         *models.PaymentSection        `json:"payment"`
	PaymentReceived *float64                      `json:"paymentReceived"`
	PaymentDue      *float64                      `json:"paymentDue"`
	FlightPayments  *models.FlightPaymentsSection `json:"flightPayments"`
	Services        *[]models.ServiceItem         `json:"additionalServices"`
}

func UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rec, err := fetchBooking(r.Context(), ps.ByName("bookingid"))
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}
	if !canAccess(claims, rec) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var upd bookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.CustomerName != nil {
		set["customerName"] = *upd.CustomerName
	}
	if upd.CustomerEmail != nil {
		set["customerEmail"] = *upd.CustomerEmail
	}
	if upd.PackageName != nil {
		set["package"] = *upd.PackageName
	}
	if upd.TravelDate != nil {
		set["date"] = *upd.TravelDate
	}
	if upd.Status != nil {
		if !validBookingStatuses[*upd.Status] {
			http.Error(w, "Invalid status", http.StatusBadRequest)
			return
		}
		set["status"] = *upd.Status
	}
	if upd.AgentID != nil {
		if !utils.Contains(claims.Role, "admin") {
			http.Error(w, "Only admins may reassign bookings", http.StatusForbidden)
			return
		}
		set["agent"] = *upd.AgentID
	}
	if upd.PNR != nil {
		if *upd.PNR != "" && !ValidPNR(*upd.PNR) {
			http.Error(w, "Invalid PNR", http.StatusBadRequest)
			return
		}
		set["pnr"] = NormalizePNR(*upd.PNR)
	}
	if upd.FlightClass != nil {
		set["flightClass"] = *upd.FlightClass
	}
	if upd.Flight != nil {
		set["flight"] = upd.Flight
	}
	if upd.Flights != nil {
		set["flights"] = upd.Flights
	}
	if upd.Hotel != nil {
		set["hotel"] = upd.Hotel
	}
	if upd.Hotels != nil {
		set["hotels"] = *upd.Hotels
	}
	if upd.Visa != nil {
		set["visa"] = upd.Visa
	}
	if upd.Visas != nil {
		set["visas"] = *upd.Visas
	}
	if upd.Transport != nil {
		set["transport"] = upd.Transport
	}
	if upd.Transportation != nil {
		set["transportation"] = upd.Transportation
	}
	if upd.Pricing != nil {
		set["pricing"] = upd.Pricing
	}
	if upd.Costing != nil {
		set["costing"] = upd.Costing
	}
	if upd.Payment != nil {
		set["payment"] = upd.Payment
	}
	if upd.PaymentReceived != nil {
		set["paymentReceived"] = *upd.PaymentReceived
	}
	if upd.PaymentDue != nil {
		set["paymentDue"] = *upd.PaymentDue
	}
	if upd.FlightPayments != nil {
		set["flightPayments"] = upd.FlightPayments
	}
	if upd.Services != nil {
		set["additionalServices"] = *upd.Services
	}

	_, err = db.BookingsCollection.UpdateOne(
		context.TODO(),
		bson.M{"bookingid": rec.BookingID},
		bson.M{"$set": set},
	)
	if err != nil {
		log.Printf("booking update failed: %v", err)
		http.Error(w, "Failed to update booking", http.StatusInternalServerError)
		return
	}

	updated, err := fetchBooking(r.Context(), rec.BookingID)
	if err != nil {
		http.Error(w, "Failed to reload booking", http.StatusInternalServerError)
		return
	}
	utils.SendResponse(w, http.StatusOK, updated, "Booking updated", nil)
}

func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rec, err := fetchBooking(r.Context(), ps.ByName("bookingid"))
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}
	if !canAccess(claims, rec) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := db.BookingsCollection.DeleteOne(context.TODO(), bson.M{"bookingid": rec.BookingID}); err != nil {
		http.Error(w, "Failed to delete booking", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Booking deleted", nil)
}

// AssignAgent sets the owning agent of a booking. Admin only.
func AssignAgent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Agent string `json:"agent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Agent == "" {
		http.Error(w, "agent is required", http.StatusBadRequest)
		return
	}

	var agent models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": input.Agent, "active": true}).Decode(&agent)
	if err != nil {
		http.Error(w, "Agent not found", http.StatusNotFound)
		return
	}

	res, err := db.BookingsCollection.UpdateOne(
		context.TODO(),
		bson.M{"bookingid": ps.ByName("bookingid")},
		bson.M{"$set": bson.M{"agent": agent.UserID, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		http.Error(w, "Failed to assign agent", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"agent": agent.UserID}, "Agent assigned", nil)
}
