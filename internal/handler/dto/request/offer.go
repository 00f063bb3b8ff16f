package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type SubmitOfferRequest struct {
	CarRef      *string    `json:"car_ref,omitempty"`
	RecipientID uuid.UUID  `json:"recipient_id" binding:"required"`
	AmountCents int64      `json:"amount_cents" binding:"required"`
	Currency    string     `json:"currency" binding:"required"`
	Terms       *string    `json:"terms,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ReplyTo     *uuid.UUID `json:"reply_to,omitempty"`
}

func (r SubmitOfferRequest) GetCarRef() string {
	if r.CarRef == nil {
		return ""
	}
	return strings.TrimSpace(*r.CarRef)
}

type ResolveOfferRequest struct {
	Status string `json:"status" binding:"required"`
}
