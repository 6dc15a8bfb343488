package notifications

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"consultly/pkg/model"
)

func sampleBooking() *model.StoredBooking {
	return &model.StoredBooking{
		BookingRequest: model.BookingRequest{
			Name:          "Priya Sharma",
			Email:         "priya.sharma@example.com",
			Phone:         "9876543210",
			State:         "Gujarat",
			Service:       "visa-processing",
			PreferredDate: "2026-04-01",
			EnglishLevel:  "Good (7 Band)",
			Age:           "18-35 years",
			Education:     "Graduation",
			Experience:    "1 year",
			VisaType:      "Work Permit",
		},
	}
}

func TestNewMailer_DisabledWithoutConfig(t *testing.T) {
	tests := []struct {
		name       string
		apiKey     string
		sender     string
		adminEmail string
	}{
		{"no api key", "", "team@example.com", "admin@example.com"},
		{"no sender", "key", "", "admin@example.com"},
		{"no admin email", "key", "team@example.com", ""},
		{"nothing configured", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMailer(tt.apiKey, tt.sender, "Team", tt.adminEmail, false)
			if m.Enabled() {
				t.Fatal("expected a disabled mailer")
			}
			if err := m.SendUserConfirmation(context.Background(), sampleBooking()); err != nil {
				t.Fatalf("disabled mailer must be a no-op, got %v", err)
			}
		})
	}
}

func TestBrevoMailer_SendsBothEmails(t *testing.T) {
	var requests []brevoSendRequest
	var apiKeys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeys = append(apiKeys, r.Header.Get("api-key"))

		body, _ := io.ReadAll(r.Body)
		var req brevoSendRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		requests = append(requests, req)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"messageId":"test"}`))
	}))
	defer server.Close()

	m := NewMailer("secret-key", "team@example.com", "Consultly Team", "admin@example.com", false)
	bm, ok := m.(*brevoMailer)
	if !ok {
		t.Fatal("expected a brevo mailer")
	}
	bm.client.endpoint = server.URL

	booking := sampleBooking()
	if err := m.SendUserConfirmation(context.Background(), booking); err != nil {
		t.Fatalf("SendUserConfirmation: %v", err)
	}
	if err := m.SendAdminAlert(context.Background(), booking); err != nil {
		t.Fatalf("SendAdminAlert: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(requests))
	}
	for _, key := range apiKeys {
		if key != "secret-key" {
			t.Fatalf("expected api-key header on every send, got %q", key)
		}
	}

	user, admin := requests[0], requests[1]
	if user.To[0].Email != booking.Email {
		t.Fatalf("user confirmation sent to %q", user.To[0].Email)
	}
	if admin.To[0].Email != "admin@example.com" {
		t.Fatalf("admin alert sent to %q", admin.To[0].Email)
	}
	if !strings.Contains(admin.HtmlContent, booking.Phone) {
		t.Fatal("admin alert must include the visitor's phone")
	}
	if !strings.Contains(user.HtmlContent, booking.PreferredDate) {
		t.Fatal("user confirmation must include the preferred date")
	}
}

func TestBrevoMailer_ReportsAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer server.Close()

	m := NewMailer("bad-key", "team@example.com", "", "admin@example.com", false)
	m.(*brevoMailer).client.endpoint = server.URL

	if err := m.SendUserConfirmation(context.Background(), sampleBooking()); err == nil {
		t.Fatal("expected an error for a rejected send")
	}
}

func TestBrevoMailer_SandboxHeader(t *testing.T) {
	var got brevoSendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	m := NewMailer("key", "team@example.com", "", "admin@example.com", true)
	m.(*brevoMailer).client.endpoint = server.URL

	if err := m.SendAdminAlert(context.Background(), sampleBooking()); err != nil {
		t.Fatalf("SendAdminAlert: %v", err)
	}
	if got.Headers["X-Sib-Sandbox"] != "drop" {
		t.Fatalf("expected sandbox header, got %v", got.Headers)
	}
}

func TestAdminAlert_MessageIsOptional(t *testing.T) {
	withMessage := sampleBooking()
	withMessage.Message = "Interested in PR pathways"

	body, err := renderTemplate(adminAlertTmpl, withMessage)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body, "Interested in PR pathways") {
		t.Fatal("message should be rendered when present")
	}

	without := sampleBooking()
	body, err = renderTemplate(adminAlertTmpl, without)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "Message:") {
		t.Fatal("message row should be omitted when empty")
	}
}
