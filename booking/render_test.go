package booking

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"tripdesk/models"
)

// extractText inflates every content stream of a rendered PDF so tests
// can assert on the visible text. Streams that do not inflate (image
// data) are skipped.
func extractText(t *testing.T, pdf []byte) string {
	t.Helper()
	var out strings.Builder
	rest := pdf
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			break
		}
		rest = rest[i+len("stream\n"):]
		j := bytes.Index(rest, []byte("endstream"))
		if j < 0 {
			break
		}
		chunk := bytes.TrimRight(rest[:j], "\r\n")
		rest = rest[j:]

		zr, err := zlib.NewReader(bytes.NewReader(chunk))
		if err != nil {
			continue
		}
		inflated, err := io.ReadAll(zr)
		zr.Close()
		if err != nil {
			continue
		}
		out.Write(inflated)
	}
	return out.String()
}

func TestRenderIdempotent(t *testing.T) {
	received := 1500.0
	view := BookingView{
		BookingID:       "b123456789",
		CustomerName:    "A. Khan",
		CustomerEmail:   "a@x.com",
		PackageName:     "Umrah 10D",
		TravelDate:      "2024-05-01",
		Status:          "confirmed",
		ApprovalStatus:  "approved",
		Hotels:          []HotelView{{Name: "Hilton", CheckIn: "2024-05-02", CheckOut: "2024-05-09"}},
		Passengers:      []models.VisaPassenger{{Name: "A. Khan", PassportNumber: "AB1234567"}},
		CostRows:        []models.CostRow{{Label: "Package", Quantity: 1, UnitPrice: 2500, Total: 2500}},
		CostTotals:      &models.CostTotals{Subtotal: 2500, GrandTotal: 2500},
		PaymentReceived: &received,
	}

	first, err := RenderBookingPDF(view)
	if err != nil {
		t.Fatal(err)
	}
	second, err := RenderBookingPDF(view)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("rendering the same view twice produced different bytes")
	}
}

func TestRenderOmitsEmptySections(t *testing.T) {
	view := NormalizeBooking(&models.BookingRecord{
		BookingID:      "b1",
		CustomerName:   "A. Khan",
		CustomerEmail:  "a@x.com",
		PackageName:    "Umrah 10D",
		TravelDate:     "2024-05-01",
		Status:         "pending",
		ApprovalStatus: "pending",
	})

	out, err := RenderBookingPDF(view)
	if err != nil {
		t.Fatal(err)
	}
	text := extractText(t, out)

	for _, want := range []string{"BOOKING STATUS", "CUSTOMER INFORMATION", "TRAVEL DATES"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected section %q in document", want)
		}
	}
	for _, absent := range []string{
		"FLIGHT DETAILS", "HOTEL DETAILS", "VISA DETAILS",
		"TRANSPORTATION", "COST SUMMARY", "ADDITIONAL SERVICES", "PAYMENT DETAILS",
	} {
		if strings.Contains(text, absent) {
			t.Errorf("empty section %q should be omitted", absent)
		}
	}
}

func TestRenderEndToEndScenario(t *testing.T) {
	raw := `{
		"customerName": "A. Khan",
		"customerEmail": "a@x.com",
		"package": "Umrah 10D",
		"date": "2024-05-01",
		"hotels": [{"name": "Hilton", "checkIn": "2024-05-02", "checkOut": "2024-05-09"}]
	}`
	var rec models.BookingRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatal(err)
	}

	out, err := RenderBookingPDF(NormalizeBooking(&rec))
	if err != nil {
		t.Fatal(err)
	}
	text := extractText(t, out)

	if !strings.Contains(text, "CUSTOMER INFORMATION") ||
		!strings.Contains(text, "A. Khan") ||
		!strings.Contains(text, "a@x.com") {
		t.Error("customer information section incomplete")
	}
	if !strings.Contains(text, "TRAVEL DATES") || !strings.Contains(text, "2024-05-01") {
		t.Error("travel dates section incomplete")
	}
	if got := strings.Count(text, "Hilton"); got != 1 {
		t.Errorf("expected exactly one hotel block naming Hilton, got %d", got)
	}
	for _, absent := range []string{"VISA DETAILS", "TRANSPORTATION", "COST SUMMARY"} {
		if strings.Contains(text, absent) {
			t.Errorf("section %q should not appear", absent)
		}
	}
}

func TestRenderMalformedDate(t *testing.T) {
	view := NormalizeBooking(&models.BookingRecord{
		BookingID:      "b2",
		CustomerName:   "A. Khan",
		CustomerEmail:  "a@x.com",
		PackageName:    "Umrah 10D",
		TravelDate:     "sometime in May",
		Status:         "pending",
		ApprovalStatus: "pending",
	})

	out, err := RenderBookingPDF(view)
	if err != nil {
		t.Fatal(err)
	}
	text := extractText(t, out)
	if strings.Contains(text, "sometime in May") {
		t.Error("malformed date should render as a placeholder, not verbatim")
	}
}

func TestRenderDoesNotMutateView(t *testing.T) {
	view := BookingView{
		BookingID:    "b3",
		CustomerName: "A. Khan",
		Hotels:       []HotelView{{Name: "Hilton"}},
	}

	if _, err := RenderBookingPDF(view); err != nil {
		t.Fatal(err)
	}
	if view.CustomerName != "A. Khan" || view.Hotels[0].Name != "Hilton" {
		t.Error("render mutated the view")
	}
}
