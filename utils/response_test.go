package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, 400, "name and email are required")

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "name and email are required" {
		t.Errorf("error field = %q", body["error"])
	}
}

func TestSendResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	SendResponse(rec, 201, M{"id": "b1"}, "Booking created", nil)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "Booking created" {
		t.Errorf("message = %v", body["message"])
	}
	if _, present := body["error"]; present {
		t.Error("error field should be absent when err is nil")
	}
}
