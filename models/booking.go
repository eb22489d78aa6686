package models

import (
	"bytes"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Booking lifecycle statuses. Status and ApprovalStatus are independent
// enumerations; approve/reject are the only operations that set both.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// FlightSection is the nested flight block. Older records carry the
// itinerary text and PNR here; newer ones keep the itinerary under
// Flights and the PNR at the top level.
type FlightSection struct {
	DepartureCity string `bson:"departureCity,omitempty" json:"departureCity,omitempty"`
	ArrivalCity   string `bson:"arrivalCity,omitempty" json:"arrivalCity,omitempty"`
	FlightClass   string `bson:"flightClass,omitempty" json:"flightClass,omitempty"`
	PNR           string `bson:"pnr,omitempty" json:"pnr,omitempty"`
	Itinerary     string `bson:"itinerary,omitempty" json:"itinerary,omitempty"`
}

// FlightsSection is the revision-shape flight block.
type FlightsSection struct {
	Raw string `bson:"raw,omitempty" json:"raw,omitempty"`
}

// HotelStay appears either as the singular legacy `hotel` object or as
// an entry of the revision `hotels` list. Some records name the hotel
// under `name`, others under `hotelName`.
type HotelStay struct {
	Name      string `bson:"name,omitempty" json:"name,omitempty"`
	HotelName string `bson:"hotelName,omitempty" json:"hotelName,omitempty"`
	City      string `bson:"city,omitempty" json:"city,omitempty"`
	RoomType  string `bson:"roomType,omitempty" json:"roomType,omitempty"`
	CheckIn   string `bson:"checkIn,omitempty" json:"checkIn,omitempty"`
	CheckOut  string `bson:"checkOut,omitempty" json:"checkOut,omitempty"`
}

// DisplayName resolves the two historical name fields; `name` wins.
func (h HotelStay) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.HotelName
}

// VisaPassenger is one passenger on a visa application.
type VisaPassenger struct {
	Name           string `bson:"name,omitempty" json:"name,omitempty"`
	PassportNumber string `bson:"passportNumber,omitempty" json:"passportNumber,omitempty"`
	Nationality    string `bson:"nationality,omitempty" json:"nationality,omitempty"`
	VisaType       string `bson:"visaType,omitempty" json:"visaType,omitempty"`
	Status         string `bson:"status,omitempty" json:"status,omitempty"`
}

// VisaList accepts the two revision shapes of the `visas` field: a
// `{passengers: [...]}` wrapper or a bare passenger array.
type VisaList []VisaPassenger

type visaWrapper struct {
	Passengers []VisaPassenger `bson:"passengers" json:"passengers"`
}

func (v *VisaList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = nil
		return nil
	}
	if trimmed[0] == '[' {
		var list []VisaPassenger
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*v = list
		return nil
	}
	var wrapper visaWrapper
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return err
	}
	*v = wrapper.Passengers
	return nil
}

func (v *VisaList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Array:
		var list []VisaPassenger
		if err := bson.UnmarshalValue(t, data, &list); err != nil {
			return err
		}
		*v = list
	case bsontype.EmbeddedDocument:
		var wrapper visaWrapper
		if err := bson.UnmarshalValue(t, data, &wrapper); err != nil {
			return err
		}
		*v = wrapper.Passengers
	case bsontype.Null:
		*v = nil
	default:
		*v = nil
	}
	return nil
}

// TransportLeg is one ground-transport segment.
type TransportLeg struct {
	TransportType  string `bson:"transportType,omitempty" json:"transportType,omitempty"`
	PickupLocation string `bson:"pickupLocation,omitempty" json:"pickupLocation,omitempty"`
	DropLocation   string `bson:"dropLocation,omitempty" json:"dropLocation,omitempty"`
	Date           string `bson:"date,omitempty" json:"date,omitempty"`
}

// TransportSection is the legacy shape: either a leg list or loose
// type/pickup strings with no legs at all.
type TransportSection struct {
	Legs           []TransportLeg `bson:"legs,omitempty" json:"legs,omitempty"`
	TransportType  string         `bson:"transportType,omitempty" json:"transportType,omitempty"`
	PickupLocation string         `bson:"pickupLocation,omitempty" json:"pickupLocation,omitempty"`
}

// TransportationSection is the revision shape.
type TransportationSection struct {
	Legs  []TransportLeg `bson:"legs,omitempty" json:"legs,omitempty"`
	Count int            `bson:"count,omitempty" json:"count,omitempty"`
}

// CostRow is one cost line item.
type CostRow struct {
	Label     string  `bson:"label,omitempty" json:"label,omitempty"`
	Quantity  int     `bson:"quantity,omitempty" json:"quantity,omitempty"`
	UnitPrice float64 `bson:"unitPrice,omitempty" json:"unitPrice,omitempty"`
	Total     float64 `bson:"total,omitempty" json:"total,omitempty"`
}

// CostTotals summarizes the cost table.
type CostTotals struct {
	Subtotal   float64 `bson:"subtotal,omitempty" json:"subtotal,omitempty"`
	Discount   float64 `bson:"discount,omitempty" json:"discount,omitempty"`
	GrandTotal float64 `bson:"grandTotal,omitempty" json:"grandTotal,omitempty"`
}

// PricingSection is the legacy costing shape.
type PricingSection struct {
	Table  []CostRow   `bson:"table,omitempty" json:"table,omitempty"`
	Totals *CostTotals `bson:"totals,omitempty" json:"totals,omitempty"`
}

// CostingSection is the revision costing shape.
type CostingSection struct {
	Rows   []CostRow   `bson:"rows,omitempty" json:"rows,omitempty"`
	Totals *CostTotals `bson:"totals,omitempty" json:"totals,omitempty"`
}

// PaymentSection is the legacy one-off payment record.
type PaymentSection struct {
	Method         string `bson:"method,omitempty" json:"method,omitempty"`
	CardLast4      string `bson:"cardLast4,omitempty" json:"cardLast4,omitempty"`
	CardholderName string `bson:"cardholderName,omitempty" json:"cardholderName,omitempty"`
}

// InstallmentEntry is one scheduled installment.
type InstallmentEntry struct {
	DueDate string  `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Amount  float64 `bson:"amount,omitempty" json:"amount,omitempty"`
	Paid    bool    `bson:"paid,omitempty" json:"paid,omitempty"`
}

// InstallmentPlan holds the schedule of an installment payment plan.
type InstallmentPlan struct {
	Schedule []InstallmentEntry `bson:"schedule,omitempty" json:"schedule,omitempty"`
}

// FlightPaymentsSection is the revision payment-plan block.
type FlightPaymentsSection struct {
	Mode        string           `bson:"mode,omitempty" json:"mode,omitempty"`
	CreditCard  string           `bson:"creditCard,omitempty" json:"creditCard,omitempty"`
	Installment *InstallmentPlan `bson:"installment,omitempty" json:"installment,omitempty"`
}

// ServiceItem is one add-on service attached to a booking (ziyarat
// tours, SIM cards, wheelchair assistance and the like).
type ServiceItem struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Details string `bson:"details,omitempty" json:"details,omitempty"`
}

// PassportScan records an uploaded passport image for a booking.
type PassportScan struct {
	Path       string `bson:"path" json:"path"`
	Thumbnail  string `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	UploadedAt int64  `bson:"uploadedAt" json:"uploadedAt"`
}

// BookingRecord is the persisted booking document. The optional
// sections may be populated under the legacy key, the revision key, or
// both; NormalizeBooking resolves them into a single view.
type BookingRecord struct {
	BookingID       string                 `bson:"bookingid" json:"bookingid"`
	CustomerName    string                 `bson:"customerName" json:"customerName"`
	CustomerEmail   string                 `bson:"customerEmail" json:"customerEmail"`
	PackageName     string                 `bson:"package" json:"package"`
	TravelDate      string                 `bson:"date" json:"date"`
	Status          string                 `bson:"status" json:"status"`
	ApprovalStatus  string                 `bson:"approvalStatus" json:"approvalStatus"`
	AgentID         string                 `bson:"agent,omitempty" json:"agent,omitempty"`
	PNR             string                 `bson:"pnr,omitempty" json:"pnr,omitempty"`
	FlightClass     string                 `bson:"flightClass,omitempty" json:"flightClass,omitempty"`
	Flight          *FlightSection         `bson:"flight,omitempty" json:"flight,omitempty"`
	Flights         *FlightsSection        `bson:"flights,omitempty" json:"flights,omitempty"`
	Hotel           *HotelStay             `bson:"hotel,omitempty" json:"hotel,omitempty"`
	Hotels          []HotelStay            `bson:"hotels,omitempty" json:"hotels,omitempty"`
	Visa            *VisaPassenger         `bson:"visa,omitempty" json:"visa,omitempty"`
	Visas           VisaList               `bson:"visas,omitempty" json:"visas,omitempty"`
	Transport       *TransportSection      `bson:"transport,omitempty" json:"transport,omitempty"`
	Transportation  *TransportationSection `bson:"transportation,omitempty" json:"transportation,omitempty"`
	Pricing         *PricingSection        `bson:"pricing,omitempty" json:"pricing,omitempty"`
	Costing         *CostingSection        `bson:"costing,omitempty" json:"costing,omitempty"`
	Payment         *PaymentSection        `bson:"payment,omitempty" json:"payment,omitempty"`
	PaymentReceived *float64               `bson:"paymentReceived,omitempty" json:"paymentReceived,omitempty"`
	PaymentDue      *float64               `bson:"paymentDue,omitempty" json:"paymentDue,omitempty"`
	FlightPayments  *FlightPaymentsSection `bson:"flightPayments,omitempty" json:"flightPayments,omitempty"`
	Services        []ServiceItem          `bson:"additionalServices,omitempty" json:"additionalServices,omitempty"`
	PassportScans   []PassportScan         `bson:"passportScans,omitempty" json:"passportScans,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}
