package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the wire encoding of preferredDate. Time-of-day is never
// transmitted; both client and server compare dates with the clock zeroed.
const DateLayout = "2006-01-02"

// BookingRequest is the consultation form as submitted by a visitor.
// Validation tags carry the presence/format rules; the custom tags are
// registered by the bookings validator.
type BookingRequest struct {
	Name          string `json:"name" bson:"name" validate:"required,person_name"`
	Email         string `json:"email" bson:"email" validate:"required,email_shape"`
	Phone         string `json:"phone" bson:"phone" validate:"required,phone_shape"`
	State         string `json:"state" bson:"state" validate:"required"`
	Service       string `json:"service" bson:"service" validate:"required"`
	PreferredDate string `json:"preferredDate" bson:"preferred_date" validate:"required"`
	Message       string `json:"message,omitempty" bson:"message,omitempty" validate:"omitempty,max=500"`

	// Eligibility profile. All required at submission time; each value is
	// drawn from a closed option set the client enforces (see options.go).
	EnglishLevel string `json:"englishLevel" bson:"english_level" validate:"required"`
	Age          string `json:"age" bson:"age" validate:"required"`
	Education    string `json:"education" bson:"education" validate:"required"`
	Experience   string `json:"experience" bson:"experience" validate:"required"`
	VisaType     string `json:"visaType" bson:"visa_type" validate:"required"`
}

// StoredBooking is a persisted BookingRequest plus storage identity and
// server-assigned timestamps. Never mutated after insert.
type StoredBooking struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	BookingRequest `bson:",inline"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updated_at"`
}

// SubmissionResult is the outcome of a successfully persisted booking.
// Warning distinguishes "accepted, notified" from "accepted, notification
// failed" without ever turning the accepted outcome into a failure.
type SubmissionResult struct {
	Booking  *StoredBooking `json:"booking"`
	Notified bool           `json:"notified"`
	Warning  string         `json:"warning,omitempty"`
}

// ParsePreferredDate parses a wire date and reports whether it is on or
// after today, date-only on both ends.
func ParsePreferredDate(value string, now time.Time) (time.Time, bool, error) {
	d, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, false, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d, !d.Before(today), nil
}
