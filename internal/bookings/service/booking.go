package service

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingserrors "consultly/internal/bookings/errors"
	"consultly/internal/bookings/repository"
	"consultly/internal/bookings/validator"
	"consultly/internal/notifications"
	"consultly/pkg/config"
	apperrors "consultly/pkg/errors"
	"consultly/pkg/events"
	"consultly/pkg/model"
	"consultly/pkg/sanitizer"
	"consultly/pkg/sealer"
)

// Warning annotations carried on an accepted outcome. The booking is durable
// either way; these only tell the caller what happened after the insert.
const (
	WarningNotifyFailed     = "accepted, notification failed"
	WarningNotificationsOff = "notifications disabled"
	msgInvalidFormat        = "Invalid data format"
	msgInvalidFields        = "Missing or invalid fields"
	msgInvalidDate          = "Invalid preferred date"
	msgPastDate             = "Cannot book a consultation in the past"
	msgAlreadyBooked        = "A consultation is already booked for this email on the selected date"
	msgConflictCheckFailed  = "Failed to check existing bookings"
	msgPersistFailed        = "Failed to save the booking"
)

type BookingService interface {
	Submit(ctx context.Context, body []byte) (*model.SubmissionResult, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	codec     *sealer.Codec
	mailer    notifications.Mailer
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	bookingValidator *validator.BookingValidator,
	codec *sealer.Codec,
	mailer notifications.Mailer,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: bookingValidator,
		codec:     codec,
		mailer:    mailer,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Submit runs the booking pipeline: decode, validate, conflict check,
// persist, notify. Every step before the insert is a possible early exit
// with no side effects; everything after the insert is best-effort.
func (s *bookingService) Submit(ctx context.Context, body []byte) (*model.SubmissionResult, error) {
	req, err := s.codec.Decode(body)
	if err != nil {
		s.cfg.Log.Warn("Booking envelope rejected", "error", err)
		return nil, apperrors.BadRequest(msgInvalidFormat)
	}

	if fieldErrors := s.validator.Validate(req); len(fieldErrors) > 0 {
		s.cfg.Log.Warn("Booking validation failed", "fields", fieldKeys(fieldErrors))
		return nil, apperrors.Validation(msgInvalidFields, fieldErrors)
	}

	// The date rule already ran inside validation; re-checking here keeps
	// the date policy an explicit pipeline step with its own messages.
	if _, ok, err := model.ParsePreferredDate(strings.TrimSpace(req.PreferredDate), s.now()); err != nil {
		return nil, apperrors.BadRequest(msgInvalidDate)
	} else if !ok {
		return nil, apperrors.BadRequest(msgPastDate)
	}

	email := sanitizer.NormalizeEmail(req.Email)
	date := strings.TrimSpace(req.PreferredDate)

	_, err = s.repo.FindByEmailAndDate(ctx, email, date)
	if err == nil {
		return nil, apperrors.Conflict(msgAlreadyBooked)
	}
	if !errors.Is(err, bookingserrors.ErrNotFound) {
		s.cfg.Log.Error("Conflict check failed", "email", email, "date", date, "error", err)
		return nil, apperrors.Internal(msgConflictCheckFailed, err)
	}

	stored, err := s.repo.Insert(ctx, normalize(req))
	if err != nil {
		// Two submissions can race past the probe above; the unique index
		// turns the loser into a conflict rather than a duplicate booking.
		if errors.Is(err, bookingserrors.ErrDuplicate) {
			return nil, apperrors.Conflict(msgAlreadyBooked)
		}
		s.cfg.Log.Error("Failed to insert booking", "email", email, "error", err)
		return nil, apperrors.Internal(msgPersistFailed, err)
	}

	s.cfg.Log.Info("Booking created",
		"id", stored.ID.Hex(),
		"email", stored.Email,
		"service", stored.Service,
		"preferred_date", stored.PreferredDate,
	)

	result := &model.SubmissionResult{Booking: stored}
	s.notify(ctx, stored, result)
	s.publish(ctx, stored)
	return result, nil
}

func (s *bookingService) notify(ctx context.Context, stored *model.StoredBooking, result *model.SubmissionResult) {
	if !s.mailer.Enabled() {
		result.Warning = WarningNotificationsOff
		return
	}

	userErr := s.mailer.SendUserConfirmation(ctx, stored)
	adminErr := s.mailer.SendAdminAlert(ctx, stored)
	if userErr != nil || adminErr != nil {
		s.cfg.Log.Error("Booking notification failed",
			"id", stored.ID.Hex(),
			"user_error", userErr,
			"admin_error", adminErr,
		)
		result.Warning = WarningNotifyFailed
		return
	}

	result.Notified = true
}

func (s *bookingService) publish(ctx context.Context, stored *model.StoredBooking) {
	if !s.publisher.Enabled() {
		return
	}
	if err := s.publisher.BookingCreated(ctx, stored); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "id", stored.ID.Hex(), "error", err)
	}
}

// normalize trims every string field and lowercases the email so stored
// records compare consistently. The submitted request is left untouched.
func normalize(req *model.BookingRequest) *model.BookingRequest {
	out := *req
	out.Name = sanitizer.NormalizeName(req.Name)
	out.Email = sanitizer.NormalizeEmail(req.Email)
	out.Phone = sanitizer.NormalizePhone(req.Phone)
	out.State = strings.TrimSpace(req.State)
	out.Service = strings.TrimSpace(req.Service)
	out.PreferredDate = strings.TrimSpace(req.PreferredDate)
	out.Message = sanitizer.NormalizeMessage(req.Message)
	out.EnglishLevel = strings.TrimSpace(req.EnglishLevel)
	out.Age = strings.TrimSpace(req.Age)
	out.Education = strings.TrimSpace(req.Education)
	out.Experience = strings.TrimSpace(req.Experience)
	out.VisaType = strings.TrimSpace(req.VisaType)
	return &out
}

func fieldKeys(fieldErrors map[string]string) []string {
	keys := make([]string, 0, len(fieldErrors))
	for k := range fieldErrors {
		keys = append(keys, k)
	}
	return keys
}
