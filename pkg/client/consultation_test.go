package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"consultly/pkg/logger"
	"consultly/pkg/model"
	"consultly/pkg/sealer"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Output:  io.Discard,
		Service: "test",
	})
}

func formRequest() *model.BookingRequest {
	return &model.BookingRequest{
		Name:          "Priya Sharma",
		Email:         "priya.sharma@example.com",
		Phone:         "9876543210",
		State:         "Gujarat",
		Service:       "visa-processing",
		PreferredDate: "2030-06-01",
		EnglishLevel:  "Good (7 Band)",
		Age:           "18-35 years",
		Education:     "Graduation",
		Experience:    "1 year",
		VisaType:      "Work Permit",
	}
}

func newSealedClient(t *testing.T, baseURL string) *ConsultationClient {
	t.Helper()
	codec, err := sealer.NewCodec(sealer.ModeProduction, sealer.DefaultKey)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return NewConsultationClient(baseURL, codec, testLogger())
}

func TestSubmitBooking_SealsAndSubmits(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/book-consultation" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		received, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": "65f0c0ffee0ddba11ad0beef", "notified": true},
		})
	}))
	defer server.Close()

	c := newSealedClient(t, server.URL)
	ack, err := c.SubmitBooking(context.Background(), formRequest())
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}

	if ack.ID != "65f0c0ffee0ddba11ad0beef" || !ack.Notified {
		t.Fatalf("unexpected ack: %+v", ack)
	}

	var env sealer.Envelope
	if err := json.Unmarshal(received, &env); err != nil || env.Encrypted == "" {
		t.Fatalf("payload was not sealed: %s", received)
	}
}

func TestSubmitBooking_CarriesWarning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": "65f0c0ffee0ddba11ad0beef", "notified": false},
			"warning": "accepted, notification failed",
		})
	}))
	defer server.Close()

	c := newSealedClient(t, server.URL)
	ack, err := c.SubmitBooking(context.Background(), formRequest())
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}
	if ack.Warning != "accepted, notification failed" {
		t.Fatalf("expected warning on ack, got %q", ack.Warning)
	}
	if ack.Notified {
		t.Fatal("notified must be false when the server says so")
	}
}

func TestSubmitBooking_ValidatesBeforeSubmitting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid form must not reach the network")
	}))
	defer server.Close()

	c := newSealedClient(t, server.URL)

	req := formRequest()
	req.Email = "broken"
	req.VisaType = "Moon Visa"

	_, err := c.SubmitBooking(context.Background(), req)

	var fieldErrors FieldErrors
	if !errors.As(err, &fieldErrors) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, ok := fieldErrors["email"]; !ok {
		t.Fatalf("expected email error, got %v", fieldErrors)
	}
	if _, ok := fieldErrors["visaType"]; !ok {
		t.Fatalf("expected visaType error, got %v", fieldErrors)
	}
}

func TestSubmitBooking_SurfacesServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error": "A consultation is already booked for this email on the selected date",
		})
	}))
	defer server.Close()

	c := newSealedClient(t, server.URL)
	_, err := c.SubmitBooking(context.Background(), formRequest())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", apiErr.StatusCode)
	}
	if apiErr.Message == "unexpected response" {
		t.Fatal("server message was not decoded")
	}
}
