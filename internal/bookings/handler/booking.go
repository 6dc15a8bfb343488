package handler

import (
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"consultly/internal/bookings/service"
	apperrors "consultly/pkg/errors"
	httputil "consultly/pkg/http"
	"consultly/pkg/logger"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

type bookingCreated struct {
	ID       string `json:"id"`
	Notified bool   `json:"notified"`
}

// Submit accepts either a plain BookingRequest body or an encrypted
// envelope; the service's codec tells them apart.
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.BadRequest("Unable to read request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "error", writeErr)
		}
		return
	}

	result, err := h.service.Submit(r.Context(), body)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "error", writeErr)
		}
		return
	}

	created := bookingCreated{
		ID:       result.Booking.ID.Hex(),
		Notified: result.Notified,
	}
	if err := httputil.WriteAccepted(w, created, result.Warning); err != nil {
		h.log.Error("failed to write success response", "handler", "Submit", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/book-consultation", h.Submit)
}
