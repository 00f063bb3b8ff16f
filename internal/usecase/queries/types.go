package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ReservationView struct {
	ID           uuid.UUID `json:"id"`
	CarID        uuid.UUID `json:"car_id"`
	RequesterID  uuid.UUID `json:"requester_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"total_cents"`
	Currency     string    `json:"currency"`
	ContactName  *string   `json:"contact_name,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ReservationListItem struct {
	ID         uuid.UUID `json:"id"`
	CarID      uuid.UUID `json:"car_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConflictingStay is one blocking reservation in an availability answer.
type ConflictingStay struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Status  string    `json:"status"`
}

type AvailabilityView struct {
	Available bool              `json:"available"`
	Conflicts []ConflictingStay `json:"conflicts"`
}

type QuoteView struct {
	Days           int    `json:"days"`
	DailyRateCents int64  `json:"daily_rate_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
	DepositCents   int64  `json:"deposit_cents"`
	TotalCents     int64  `json:"total_cents"`
	Currency       string `json:"currency"`
}

type CarView struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	Currency       string    `json:"currency"`
}

type OfferView struct {
	ID              uuid.UUID  `json:"id"`
	ConversationKey string     `json:"conversation_key"`
	SenderID        uuid.UUID  `json:"sender_id"`
	RecipientID     uuid.UUID  `json:"recipient_id"`
	CarRef          *string    `json:"car_ref,omitempty"`
	Kind            string     `json:"kind"`
	AmountCents     int64      `json:"amount_cents"`
	Currency        string     `json:"currency"`
	Terms           *string    `json:"terms,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	Status          string     `json:"status"`
	ReplyTo         *uuid.UUID `json:"reply_to,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
