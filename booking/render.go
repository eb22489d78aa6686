package booking

import (
	"bytes"
	"fmt"
	"time"

	"tripdesk/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	agencyName  = "TRIPDESK TRAVELS & TOURS"
	footerLine1 = "TripDesk Travels & Tours - 12 Mall Road, Lahore"
	footerLine2 = "Phone: +92 42 111 222 333 | Email: bookings@tripdesk.pk"
)

// RenderBookingPDF turns a normalized booking view into an A4 summary
// document. Sections with no data are omitted entirely. Output is
// deterministic: the same view always renders byte-identical bytes.
// The creation date is pinned and catalog objects are sorted, so
// neither the clock nor map iteration order leaks into the output.
func RenderBookingPDF(view BookingView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Summary "+view.BookingID, false)
	pdf.SetCreationDate(time.Unix(0, 0))
	pdf.SetCatalogSort(true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 28)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-22)
		pdf.SetFont("Arial", "I", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 5, footerLine1, "T", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, footerLine2, "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	drawHeaderBand(pdf, view.BookingID)

	drawStatusSection(pdf, view)
	drawCustomerSection(pdf, view)
	drawTravelDatesSection(pdf, view)
	drawFlightSection(pdf, view)
	drawHotelSection(pdf, view)
	drawVisaSection(pdf, view)
	drawTransportSection(pdf, view)
	drawCostSection(pdf, view)
	drawServicesSection(pdf, view)
	drawPaymentSection(pdf, view)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// drawHeaderBand paints the branded band: agency name centered on a
// navy fill, booking reference beneath it, QR of the reference on the
// right for office filing lookups.
func drawHeaderBand(pdf *gofpdf.Fpdf, bookingID string) {
	pageW, _ := pdf.GetPageSize()

	pdf.SetFillColor(21, 72, 144)
	pdf.Rect(0, 0, pageW, 30, "F")

	pdf.SetXY(0, 7)
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(pageW, 10, agencyName, "", 1, "C", false, 0, "")

	pdf.SetX(0)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(pageW, 7, "Booking Ref: "+orDash(bookingID), "", 1, "C", false, 0, "")

	if bookingID != "" {
		if qrPNG, err := qrcode.Encode(bookingID, qrcode.Medium, 128); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("bookingqr", opts, bytes.NewReader(qrPNG))
			pdf.ImageOptions("bookingqr", pageW-33, 33, 18, 18, false, opts, 0, "")
		}
	}

	pdf.SetY(36)
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Arial", "BU", 13)
	pdf.SetTextColor(21, 72, 144)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func fieldRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, orDash(value), "", "L", false)
}

// blockHeading prints the ordinal heading of a repeated list block.
func blockHeading(pdf *gofpdf.Fpdf, ordinal int, text string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, fmt.Sprintf("%d. %s", ordinal, orDash(text)), "", 1, "L", false, 0, "")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func drawStatusSection(pdf *gofpdf.Fpdf, view BookingView) {
	sectionTitle(pdf, "BOOKING STATUS")
	fieldRow(pdf, "Status", view.Status)
	fieldRow(pdf, "Approval", view.ApprovalStatus)
	if view.AgentName != "" {
		fieldRow(pdf, "Handled By", view.AgentName)
		fieldRow(pdf, "Agent Email", view.AgentEmail)
	}
}

func drawCustomerSection(pdf *gofpdf.Fpdf, view BookingView) {
	sectionTitle(pdf, "CUSTOMER INFORMATION")
	fieldRow(pdf, "Name", view.CustomerName)
	fieldRow(pdf, "Email", view.CustomerEmail)
	fieldRow(pdf, "Package", view.PackageName)
}

func drawTravelDatesSection(pdf *gofpdf.Fpdf, view BookingView) {
	sectionTitle(pdf, "TRAVEL DATES")
	fieldRow(pdf, "Travel Date", utils.FormatDate(view.TravelDate))
}

func drawFlightSection(pdf *gofpdf.Fpdf, view BookingView) {
	if view.DepartureCity == "" && view.ArrivalCity == "" && view.FlightClass == "" &&
		view.PNR == "" && view.Itinerary == "" {
		return
	}
	sectionTitle(pdf, "FLIGHT DETAILS")
	if view.DepartureCity != "" || view.ArrivalCity != "" {
		fieldRow(pdf, "Route", orDash(view.DepartureCity)+" to "+orDash(view.ArrivalCity))
	}
	fieldRow(pdf, "Class", view.FlightClass)
	fieldRow(pdf, "PNR", view.PNR)
	if view.Itinerary != "" {
		fieldRow(pdf, "Itinerary", view.Itinerary)
	}
}

func drawHotelSection(pdf *gofpdf.Fpdf, view BookingView) {
	if len(view.Hotels) == 0 {
		return
	}
	sectionTitle(pdf, "HOTEL DETAILS")
	for i, h := range view.Hotels {
		blockHeading(pdf, i+1, h.Name)
		fieldRow(pdf, "City", h.City)
		fieldRow(pdf, "Room Type", h.RoomType)
		fieldRow(pdf, "Check-In", utils.FormatDate(h.CheckIn))
		fieldRow(pdf, "Check-Out", utils.FormatDate(h.CheckOut))
		pdf.Ln(1)
	}
}

func drawVisaSection(pdf *gofpdf.Fpdf, view BookingView) {
	if len(view.Passengers) == 0 {
		return
	}
	sectionTitle(pdf, "VISA DETAILS")
	for i, p := range view.Passengers {
		blockHeading(pdf, i+1, p.Name)
		fieldRow(pdf, "Passport No", p.PassportNumber)
		fieldRow(pdf, "Nationality", p.Nationality)
		fieldRow(pdf, "Visa Type", p.VisaType)
		fieldRow(pdf, "Status", p.Status)
		pdf.Ln(1)
	}
}

func drawTransportSection(pdf *gofpdf.Fpdf, view BookingView) {
	if len(view.TransportLegs) == 0 && view.TransportSummary == "" {
		return
	}
	sectionTitle(pdf, "TRANSPORTATION")
	if view.TransportSummary != "" {
		fieldRow(pdf, "Transport", view.TransportSummary)
		return
	}
	for i, leg := range view.TransportLegs {
		blockHeading(pdf, i+1, leg.TransportType)
		fieldRow(pdf, "Pickup", leg.PickupLocation)
		fieldRow(pdf, "Drop-Off", leg.DropLocation)
		fieldRow(pdf, "Date", utils.FormatDate(leg.Date))
		pdf.Ln(1)
	}
}

func drawCostSection(pdf *gofpdf.Fpdf, view BookingView) {
	if len(view.CostRows) == 0 && view.CostTotals == nil {
		return
	}
	sectionTitle(pdf, "COST SUMMARY")

	if len(view.CostRows) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(235, 240, 248)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(90, 7, "Description", "1", 0, "L", true, 0, "")
		pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", true, 0, "")
		pdf.CellFormat(35, 7, "Total", "1", 1, "R", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, row := range view.CostRows {
			pdf.CellFormat(90, 7, orDash(row.Label), "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 7, fmt.Sprintf("%d", row.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 7, money(row.UnitPrice), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 7, money(row.Total), "1", 1, "R", false, 0, "")
		}
	}

	if view.CostTotals != nil {
		pdf.Ln(1)
		fieldRow(pdf, "Subtotal", money(view.CostTotals.Subtotal))
		if view.CostTotals.Discount != 0 {
			fieldRow(pdf, "Discount", money(view.CostTotals.Discount))
		}
		fieldRow(pdf, "Grand Total", money(view.CostTotals.GrandTotal))
	}
}

func drawServicesSection(pdf *gofpdf.Fpdf, view BookingView) {
	if len(view.Services) == 0 {
		return
	}
	sectionTitle(pdf, "ADDITIONAL SERVICES")
	for i, svc := range view.Services {
		blockHeading(pdf, i+1, svc.Name)
		if svc.Details != "" {
			fieldRow(pdf, "Details", svc.Details)
		}
	}
}

func drawPaymentSection(pdf *gofpdf.Fpdf, view BookingView) {
	hasOneOff := view.Payment != nil
	hasBalance := view.PaymentReceived != nil || view.PaymentDue != nil
	hasPlan := view.InstallmentMode != "" || view.InstallmentCard != "" || len(view.Installments) > 0
	if !hasOneOff && !hasBalance && !hasPlan {
		return
	}
	sectionTitle(pdf, "PAYMENT DETAILS")

	if hasOneOff {
		fieldRow(pdf, "Method", view.Payment.Method)
		if view.Payment.CardLast4 != "" {
			fieldRow(pdf, "Card", "**** "+view.Payment.CardLast4)
		}
		fieldRow(pdf, "Cardholder", view.Payment.CardholderName)
	}

	if view.PaymentReceived != nil {
		fieldRow(pdf, "Received", money(*view.PaymentReceived))
	}
	if view.PaymentDue != nil {
		fieldRow(pdf, "Due", money(*view.PaymentDue))
	}

	if hasPlan {
		fieldRow(pdf, "Payment Mode", view.InstallmentMode)
		if view.InstallmentCard != "" {
			fieldRow(pdf, "Credit Card", view.InstallmentCard)
		}
		for i, inst := range view.Installments {
			blockHeading(pdf, i+1, "Installment due "+utils.FormatDate(inst.DueDate))
			fieldRow(pdf, "Amount", money(inst.Amount))
			if inst.Paid {
				fieldRow(pdf, "Paid", "yes")
			} else {
				fieldRow(pdf, "Paid", "no")
			}
		}
	}
}
