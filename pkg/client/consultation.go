package client

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"consultly/internal/bookings/validator"
	"consultly/pkg/logger"
	"consultly/pkg/model"
	"consultly/pkg/sealer"
)

// FieldErrors is a client-side validation failure, keyed by wire field name.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid form fields: %s", strings.Join(fields, ", "))
}

// APIError is a rejection returned by the booking endpoint.
type APIError struct {
	StatusCode int
	Message    string
	Details    map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("booking API returned %d: %s", e.StatusCode, e.Message)
}

type BookingAck struct {
	ID       string `json:"id"`
	Notified bool   `json:"notified"`
	Warning  string `json:"-"`
}

// ConsultationClient mirrors the booking form: it runs the form-level
// pre-check, seals the payload, and posts it to the booking endpoint.
type ConsultationClient struct {
	http      *HttpClient
	codec     *sealer.Codec
	validator *validator.BookingValidator
}

func NewConsultationClient(baseURL string, codec *sealer.Codec, log *logger.Logger) *ConsultationClient {
	return &ConsultationClient{
		http:      NewHttpClient(baseURL),
		codec:     codec,
		validator: validator.NewBookingValidator(log),
	}
}

// SubmitBooking validates the form, seals the payload, and submits it.
// Validation failures return FieldErrors without touching the network;
// server rejections return *APIError.
func (c *ConsultationClient) SubmitBooking(ctx context.Context, req *model.BookingRequest) (*BookingAck, error) {
	if fieldErrors := c.validator.ValidateForm(req); len(fieldErrors) > 0 {
		return nil, FieldErrors(fieldErrors)
	}

	payload, err := c.codec.Encode(req)
	if err != nil {
		return nil, fmt.Errorf("encode booking payload: %w", err)
	}

	resp, err := c.http.POSTRaw(ctx, "/api/book-consultation", payload)
	if err != nil {
		return nil, fmt.Errorf("submit booking: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var envelope struct {
		Success bool       `json:"success"`
		Data    BookingAck `json:"data"`
		Warning string     `json:"warning"`
	}
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("decode booking response: %w", err)
	}

	ack := envelope.Data
	ack.Warning = envelope.Warning
	return &ack, nil
}

func decodeAPIError(resp *Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: "unexpected response"}

	var body struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	if err := resp.DecodeJSON(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	}

	return apiErr
}
