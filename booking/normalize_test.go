package booking

import (
	"encoding/json"
	"testing"

	"tripdesk/models"
)

func TestNormalizeHotelsListWins(t *testing.T) {
	rec := &models.BookingRecord{
		Hotel: &models.HotelStay{Name: "Old Singular"},
		Hotels: []models.HotelStay{
			{Name: "Hilton", City: "Makkah"},
			{HotelName: "Pullman", City: "Madinah"},
		},
	}

	view := NormalizeBooking(rec)
	if len(view.Hotels) != 2 {
		t.Fatalf("expected 2 hotels, got %d", len(view.Hotels))
	}
	if view.Hotels[0].Name != "Hilton" {
		t.Errorf("expected Hilton first, got %q", view.Hotels[0].Name)
	}
	if view.Hotels[1].Name != "Pullman" {
		t.Errorf("hotelName fallback not applied, got %q", view.Hotels[1].Name)
	}
}

func TestNormalizeHotelsEmptyListFallsThrough(t *testing.T) {
	rec := &models.BookingRecord{
		Hotel:  &models.HotelStay{Name: "Hilton", CheckIn: "2024-05-02"},
		Hotels: []models.HotelStay{},
	}

	view := NormalizeBooking(rec)
	if len(view.Hotels) != 1 {
		t.Fatalf("expected exactly 1 hotel block, got %d", len(view.Hotels))
	}
	if view.Hotels[0].Name != "Hilton" {
		t.Errorf("expected legacy hotel, got %q", view.Hotels[0].Name)
	}
}

func TestNormalizeHotelNamePrecedence(t *testing.T) {
	rec := &models.BookingRecord{
		Hotels: []models.HotelStay{{Name: "Primary", HotelName: "Secondary"}},
	}
	view := NormalizeBooking(rec)
	if view.Hotels[0].Name != "Primary" {
		t.Errorf("name should win over hotelName, got %q", view.Hotels[0].Name)
	}
}

func TestNormalizeVisaShapes(t *testing.T) {
	// singular legacy object
	rec := &models.BookingRecord{
		Visa: &models.VisaPassenger{Name: "A. Khan", PassportNumber: "AB1234567"},
	}
	view := NormalizeBooking(rec)
	if len(view.Passengers) != 1 || view.Passengers[0].Name != "A. Khan" {
		t.Fatalf("legacy visa object not normalized: %+v", view.Passengers)
	}

	// revision list wins over legacy object
	rec.Visas = models.VisaList{
		{Name: "B. Khan"},
		{Name: "C. Khan"},
	}
	view = NormalizeBooking(rec)
	if len(view.Passengers) != 2 || view.Passengers[0].Name != "B. Khan" {
		t.Fatalf("revision visas should win: %+v", view.Passengers)
	}
}

func TestVisaListUnmarshalJSON(t *testing.T) {
	var bare models.VisaList
	if err := json.Unmarshal([]byte(`[{"name":"A"},{"name":"B"}]`), &bare); err != nil {
		t.Fatal(err)
	}
	if len(bare) != 2 {
		t.Fatalf("bare array: expected 2 passengers, got %d", len(bare))
	}

	var wrapped models.VisaList
	if err := json.Unmarshal([]byte(`{"passengers":[{"name":"C"}]}`), &wrapped); err != nil {
		t.Fatal(err)
	}
	if len(wrapped) != 1 || wrapped[0].Name != "C" {
		t.Fatalf("wrapper shape: got %+v", wrapped)
	}

	var null models.VisaList
	if err := json.Unmarshal([]byte(`null`), &null); err != nil {
		t.Fatal(err)
	}
	if null != nil {
		t.Fatalf("null should decode to nil, got %+v", null)
	}
}

func TestNormalizeTransportLegsPrecedence(t *testing.T) {
	rec := &models.BookingRecord{
		Transport: &models.TransportSection{
			Legs: []models.TransportLeg{{TransportType: "Bus", PickupLocation: "Airport"}},
		},
		Transportation: &models.TransportationSection{
			Legs: []models.TransportLeg{
				{TransportType: "Coach", PickupLocation: "Jeddah Airport"},
				{TransportType: "Taxi", PickupLocation: "Hotel"},
			},
		},
	}

	view := NormalizeBooking(rec)
	if len(view.TransportLegs) != 2 || view.TransportLegs[0].TransportType != "Coach" {
		t.Fatalf("revision transportation legs should win: %+v", view.TransportLegs)
	}
	if view.TransportSummary != "" {
		t.Errorf("summary should be empty when legs exist, got %q", view.TransportSummary)
	}
}

func TestNormalizeTransportCountOnly(t *testing.T) {
	rec := &models.BookingRecord{
		Transportation: &models.TransportationSection{Count: 3},
	}
	view := NormalizeBooking(rec)
	if len(view.TransportLegs) != 0 {
		t.Fatalf("no legs expected, got %+v", view.TransportLegs)
	}
	if view.TransportSummary != "3 transfers arranged" {
		t.Errorf("unexpected summary: %q", view.TransportSummary)
	}

	rec.Transportation.Count = 1
	if got := NormalizeBooking(rec).TransportSummary; got != "1 transfer arranged" {
		t.Errorf("singular summary: %q", got)
	}

	// count yields to an actual leg table
	rec.Transportation.Legs = []models.TransportLeg{{TransportType: "Coach"}}
	view = NormalizeBooking(rec)
	if len(view.TransportLegs) != 1 || view.TransportSummary != "" {
		t.Errorf("legs should win over count: %+v %q", view.TransportLegs, view.TransportSummary)
	}
}

func TestNormalizeTransportLooseStrings(t *testing.T) {
	rec := &models.BookingRecord{
		Transport: &models.TransportSection{
			TransportType:  "Private Car",
			PickupLocation: "Jeddah Airport",
		},
	}

	view := NormalizeBooking(rec)
	if len(view.TransportLegs) != 0 {
		t.Fatalf("no legs expected, got %+v", view.TransportLegs)
	}
	if view.TransportSummary != "Private Car, pickup at Jeddah Airport" {
		t.Errorf("unexpected summary: %q", view.TransportSummary)
	}
}

func TestNormalizeCostingPrecedence(t *testing.T) {
	rec := &models.BookingRecord{
		Pricing: &models.PricingSection{
			Table:  []models.CostRow{{Label: "Legacy row", Total: 100}},
			Totals: &models.CostTotals{GrandTotal: 100},
		},
	}
	view := NormalizeBooking(rec)
	if len(view.CostRows) != 1 || view.CostRows[0].Label != "Legacy row" {
		t.Fatalf("legacy pricing table expected: %+v", view.CostRows)
	}

	rec.Costing = &models.CostingSection{
		Rows:   []models.CostRow{{Label: "Revision row", Total: 200}},
		Totals: &models.CostTotals{GrandTotal: 200},
	}
	view = NormalizeBooking(rec)
	if view.CostRows[0].Label != "Revision row" {
		t.Fatalf("revision costing should win: %+v", view.CostRows)
	}
	if view.CostTotals == nil || view.CostTotals.GrandTotal != 200 {
		t.Fatalf("revision totals should win: %+v", view.CostTotals)
	}
}

func TestNormalizeFlightFields(t *testing.T) {
	rec := &models.BookingRecord{
		PNR:         "ab-12c3",
		FlightClass: "Economy",
		Flight: &models.FlightSection{
			DepartureCity: "Lahore",
			ArrivalCity:   "Jeddah",
			FlightClass:   "Business",
			PNR:           "zz99zz",
			Itinerary:     "LHE-JED via PK759",
		},
	}

	view := NormalizeBooking(rec)
	if view.PNR != "AB12C3" {
		t.Errorf("top-level PNR should win normalized, got %q", view.PNR)
	}
	if view.FlightClass != "Economy" {
		t.Errorf("top-level flightClass should win, got %q", view.FlightClass)
	}
	if view.DepartureCity != "Lahore" || view.ArrivalCity != "Jeddah" {
		t.Errorf("route not resolved: %q to %q", view.DepartureCity, view.ArrivalCity)
	}
	if view.Itinerary != "LHE-JED via PK759" {
		t.Errorf("legacy itinerary fallback not applied: %q", view.Itinerary)
	}

	// revision raw itinerary wins when present
	rec.Flights = &models.FlightsSection{Raw: "Revised schedule text"}
	view = NormalizeBooking(rec)
	if view.Itinerary != "Revised schedule text" {
		t.Errorf("flights.raw should win: %q", view.Itinerary)
	}

	// nested PNR is the fallback when top-level is empty
	rec.PNR = ""
	view = NormalizeBooking(rec)
	if view.PNR != "ZZ99ZZ" {
		t.Errorf("flight.pnr fallback not applied: %q", view.PNR)
	}
}

func TestNormalizeDoesNotMutateRecord(t *testing.T) {
	rec := &models.BookingRecord{
		PNR:    "ab-12c3",
		Hotels: []models.HotelStay{{Name: "Hilton"}},
		Visas:  models.VisaList{{Name: "A"}},
	}

	view := NormalizeBooking(rec)
	view.Hotels[0].Name = "Changed"
	view.Passengers[0].Name = "Changed"

	if rec.PNR != "ab-12c3" {
		t.Errorf("record PNR mutated: %q", rec.PNR)
	}
	if rec.Hotels[0].Name != "Hilton" || rec.Visas[0].Name != "A" {
		t.Error("normalization leaked mutations into the record")
	}
}

func TestNormalizeEmptyRecord(t *testing.T) {
	view := NormalizeBooking(&models.BookingRecord{})
	if len(view.Hotels) != 0 || len(view.Passengers) != 0 ||
		len(view.TransportLegs) != 0 || len(view.CostRows) != 0 {
		t.Fatalf("empty record should normalize to empty view: %+v", view)
	}
	if view.TransportSummary != "" || view.CostTotals != nil {
		t.Fatal("empty record produced spurious normalized data")
	}
}
