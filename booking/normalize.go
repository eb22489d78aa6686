package booking

import (
	"fmt"

	"tripdesk/models"
)

// BookingView is the canonical, display-ready form of a booking. Every
// logical field appears exactly once; the legacy/revision ambiguity of
// the stored record is resolved before anything downstream runs.
type BookingView struct {
	BookingID      string
	CustomerName   string
	CustomerEmail  string
	PackageName    string
	TravelDate     string
	Status         string
	ApprovalStatus string

	// Assigned agent, joined by the caller when available.
	AgentName  string
	AgentEmail string

	DepartureCity string
	ArrivalCity   string
	FlightClass   string
	PNR           string
	Itinerary     string

	Hotels     []HotelView
	Passengers []models.VisaPassenger

	// TransportLegs holds the leg table; when the record carries only
	// loose type/pickup strings, TransportSummary is set instead.
	TransportLegs    []models.TransportLeg
	TransportSummary string

	CostRows   []models.CostRow
	CostTotals *models.CostTotals

	Payment         *models.PaymentSection
	PaymentReceived *float64
	PaymentDue      *float64

	InstallmentMode string
	InstallmentCard string
	Installments    []models.InstallmentEntry

	Services []models.ServiceItem
}

// HotelView is one resolved hotel stay.
type HotelView struct {
	Name     string
	City     string
	RoomType string
	CheckIn  string
	CheckOut string
}

// NormalizeBooking resolves each logical field of a raw booking record
// to a single value. Revision-shape fields win; legacy fields are the
// fallback. An empty revision collection falls through to the legacy
// singular object. Absence of a field is a displayable state, never an
// error, so this function cannot fail.
func NormalizeBooking(rec *models.BookingRecord) BookingView {
	view := BookingView{
		BookingID:       rec.BookingID,
		CustomerName:    rec.CustomerName,
		CustomerEmail:   rec.CustomerEmail,
		PackageName:     rec.PackageName,
		TravelDate:      rec.TravelDate,
		Status:          rec.Status,
		ApprovalStatus:  rec.ApprovalStatus,
		PaymentReceived: rec.PaymentReceived,
		PaymentDue:      rec.PaymentDue,
	}

	// Route and class: top-level fields first, nested flight fallback.
	view.PNR = rec.PNR
	view.FlightClass = rec.FlightClass
	if rec.Flight != nil {
		view.DepartureCity = rec.Flight.DepartureCity
		view.ArrivalCity = rec.Flight.ArrivalCity
		if view.FlightClass == "" {
			view.FlightClass = rec.Flight.FlightClass
		}
		if view.PNR == "" {
			view.PNR = rec.Flight.PNR
		}
	}
	if view.PNR != "" {
		view.PNR = NormalizePNR(view.PNR)
	}

	// Itinerary text: revision raw block first, legacy nested fallback.
	if rec.Flights != nil && rec.Flights.Raw != "" {
		view.Itinerary = rec.Flights.Raw
	} else if rec.Flight != nil {
		view.Itinerary = rec.Flight.Itinerary
	}

	view.Hotels = normalizeHotels(rec)
	view.Passengers = normalizePassengers(rec)
	view.TransportLegs, view.TransportSummary = normalizeTransport(rec)
	view.CostRows, view.CostTotals = normalizeCosting(rec)

	if len(rec.Services) > 0 {
		view.Services = make([]models.ServiceItem, len(rec.Services))
		copy(view.Services, rec.Services)
	}

	view.Payment = rec.Payment
	if rec.FlightPayments != nil {
		view.InstallmentMode = rec.FlightPayments.Mode
		view.InstallmentCard = rec.FlightPayments.CreditCard
		if rec.FlightPayments.Installment != nil {
			view.Installments = rec.FlightPayments.Installment.Schedule
		}
	}

	return view
}

// normalizeHotels prefers the revision `hotels` list; an empty list
// falls through to the legacy singular `hotel` object.
func normalizeHotels(rec *models.BookingRecord) []HotelView {
	if len(rec.Hotels) > 0 {
		views := make([]HotelView, 0, len(rec.Hotels))
		for _, h := range rec.Hotels {
			views = append(views, hotelView(h))
		}
		return views
	}
	if rec.Hotel != nil {
		return []HotelView{hotelView(*rec.Hotel)}
	}
	return nil
}

func hotelView(h models.HotelStay) HotelView {
	return HotelView{
		Name:     h.DisplayName(),
		City:     h.City,
		RoomType: h.RoomType,
		CheckIn:  h.CheckIn,
		CheckOut: h.CheckOut,
	}
}

// normalizePassengers folds the three stored visa shapes (passengers
// wrapper, bare array, singular legacy object) into one list.
func normalizePassengers(rec *models.BookingRecord) []models.VisaPassenger {
	if len(rec.Visas) > 0 {
		out := make([]models.VisaPassenger, len(rec.Visas))
		copy(out, rec.Visas)
		return out
	}
	if rec.Visa != nil {
		return []models.VisaPassenger{*rec.Visa}
	}
	return nil
}

// normalizeTransport returns either a leg table or, when the legacy
// section holds only loose type/pickup strings, a single-line summary.
func normalizeTransport(rec *models.BookingRecord) ([]models.TransportLeg, string) {
	if rec.Transportation != nil {
		if len(rec.Transportation.Legs) > 0 {
			legs := make([]models.TransportLeg, len(rec.Transportation.Legs))
			copy(legs, rec.Transportation.Legs)
			return legs, ""
		}
		// Some revisions store only a leg count.
		if count := rec.Transportation.Count; count > 0 {
			noun := "transfers"
			if count == 1 {
				noun = "transfer"
			}
			return nil, fmt.Sprintf("%d %s arranged", count, noun)
		}
	}
	if rec.Transport != nil {
		if len(rec.Transport.Legs) > 0 {
			legs := make([]models.TransportLeg, len(rec.Transport.Legs))
			copy(legs, rec.Transport.Legs)
			return legs, ""
		}
		if rec.Transport.TransportType != "" || rec.Transport.PickupLocation != "" {
			return nil, transportSummary(rec.Transport.TransportType, rec.Transport.PickupLocation)
		}
	}
	return nil, ""
}

func transportSummary(transportType, pickup string) string {
	switch {
	case transportType != "" && pickup != "":
		return fmt.Sprintf("%s, pickup at %s", transportType, pickup)
	case transportType != "":
		return transportType
	default:
		return "Pickup at " + pickup
	}
}

// normalizeCosting prefers the revision `costing` block; an empty row
// list falls through to the legacy `pricing` table.
func normalizeCosting(rec *models.BookingRecord) ([]models.CostRow, *models.CostTotals) {
	if rec.Costing != nil && (len(rec.Costing.Rows) > 0 || rec.Costing.Totals != nil) {
		rows := make([]models.CostRow, len(rec.Costing.Rows))
		copy(rows, rec.Costing.Rows)
		return rows, copyTotals(rec.Costing.Totals)
	}
	if rec.Pricing != nil && (len(rec.Pricing.Table) > 0 || rec.Pricing.Totals != nil) {
		rows := make([]models.CostRow, len(rec.Pricing.Table))
		copy(rows, rec.Pricing.Table)
		return rows, copyTotals(rec.Pricing.Totals)
	}
	return nil, nil
}

func copyTotals(t *models.CostTotals) *models.CostTotals {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
