package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "consultly/pkg/errors"
	"consultly/pkg/logger"
	"consultly/pkg/model"
)

type mockBookingService struct {
	submitFunc func(ctx context.Context, body []byte) (*model.SubmissionResult, error)
}

func (m *mockBookingService) Submit(ctx context.Context, body []byte) (*model.SubmissionResult, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, body)
	}
	return nil, apperrors.Internal("not configured", nil)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Output:  io.Discard,
		Service: "test",
	})
}

func newTestRouter(svc *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, testLogger()).RegisterRoutes(router)
	return router
}

func postBooking(router *httprouter.Router, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/book-consultation", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmit_Success(t *testing.T) {
	id := primitive.NewObjectID()
	svc := &mockBookingService{
		submitFunc: func(ctx context.Context, body []byte) (*model.SubmissionResult, error) {
			return &model.SubmissionResult{
				Booking:  &model.StoredBooking{ID: id},
				Notified: true,
			}, nil
		},
	}

	rec := postBooking(newTestRouter(svc), []byte(`{}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Warning string `json:"warning"`
		Data    struct {
			ID       string `json:"id"`
			Notified bool   `json:"notified"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success flag")
	}
	if resp.Data.ID != id.Hex() {
		t.Fatalf("expected id %s, got %s", id.Hex(), resp.Data.ID)
	}
	if !resp.Data.Notified {
		t.Fatal("expected notified flag")
	}
	if resp.Warning != "" {
		t.Fatalf("expected no warning, got %q", resp.Warning)
	}
}

func TestSubmit_SuccessWithWarning(t *testing.T) {
	svc := &mockBookingService{
		submitFunc: func(ctx context.Context, body []byte) (*model.SubmissionResult, error) {
			return &model.SubmissionResult{
				Booking: &model.StoredBooking{ID: primitive.NewObjectID()},
				Warning: "accepted, notification failed",
			}, nil
		},
	}

	rec := postBooking(newTestRouter(svc), []byte(`{}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("a warning must not change the status, got %d", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Warning string `json:"warning"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success flag despite warning")
	}
	if resp.Warning != "accepted, notification failed" {
		t.Fatalf("expected warning in response, got %q", resp.Warning)
	}
}

func TestSubmit_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "bad request",
			err:        apperrors.BadRequest("Invalid data format"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid data format",
		},
		{
			name: "validation with field errors",
			err: apperrors.Validation("Missing or invalid fields", map[string]string{
				"email": "email must be a valid email address",
			}),
			wantStatus: http.StatusBadRequest,
			wantBody:   "Missing or invalid fields",
		},
		{
			name:       "conflict",
			err:        apperrors.Conflict("A consultation is already booked for this email on the selected date"),
			wantStatus: http.StatusConflict,
			wantBody:   "already booked",
		},
		{
			name:       "internal detail is masked",
			err:        apperrors.Internal("Failed to save the booking", nil),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				submitFunc: func(ctx context.Context, body []byte) (*model.SubmissionResult, error) {
					return nil, tt.err
				},
			}

			rec := postBooking(newTestRouter(svc), []byte(`{}`))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if !bytes.Contains(rec.Body.Bytes(), []byte(tt.wantBody)) {
				t.Fatalf("expected body to contain %q, got %s", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestSubmit_ValidationDetailsReachTheClient(t *testing.T) {
	svc := &mockBookingService{
		submitFunc: func(ctx context.Context, body []byte) (*model.SubmissionResult, error) {
			return nil, apperrors.Validation("Missing or invalid fields", map[string]string{
				"phone": "phone must be 10-15 characters: digits, spaces, or ()+-",
			})
		},
	}

	rec := postBooking(newTestRouter(svc), []byte(`{}`))

	var resp struct {
		Error   string `json:"error"`
		Details struct {
			FieldErrors map[string]string `json:"fieldErrors"`
		} `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Details.FieldErrors["phone"] == "" {
		t.Fatalf("expected phone field error in details, got %s", rec.Body.String())
	}
}

func TestSubmit_PassesRawBodyToService(t *testing.T) {
	var received []byte
	svc := &mockBookingService{
		submitFunc: func(ctx context.Context, body []byte) (*model.SubmissionResult, error) {
			received = body
			return &model.SubmissionResult{
				Booking: &model.StoredBooking{ID: primitive.NewObjectID()},
			}, nil
		},
	}

	payload := []byte(`{"encrypted":"abc123"}`)
	postBooking(newTestRouter(svc), payload)

	if !bytes.Equal(received, payload) {
		t.Fatalf("handler must pass the body through untouched, got %s", received)
	}
}
