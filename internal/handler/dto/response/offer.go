package response

import (
	"time"

	"carmarket-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type OfferResponse struct {
	ID              uuid.UUID  `json:"id"`
	ConversationKey string     `json:"conversationKey"`
	SenderID        uuid.UUID  `json:"senderId"`
	RecipientID     uuid.UUID  `json:"recipientId"`
	CarRef          *string    `json:"carRef,omitempty"`
	Kind            string     `json:"kind"`
	AmountCents     int64      `json:"amountCents"`
	Currency        string     `json:"currency"`
	Terms           *string    `json:"terms,omitempty"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	Status          string     `json:"status"`
	ReplyTo         *uuid.UUID `json:"replyTo,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func FromOfferView(om *queries.OfferView) *OfferResponse {
	return &OfferResponse{
		ID:              om.ID,
		ConversationKey: om.ConversationKey,
		SenderID:        om.SenderID,
		RecipientID:     om.RecipientID,
		CarRef:          om.CarRef,
		Kind:            om.Kind,
		AmountCents:     om.AmountCents,
		Currency:        om.Currency,
		Terms:           om.Terms,
		ExpiresAt:       om.ExpiresAt,
		Status:          om.Status,
		ReplyTo:         om.ReplyTo,
		CreatedAt:       om.CreatedAt,
		UpdatedAt:       om.UpdatedAt,
	}
}

func FromOfferViews(views []*queries.OfferView) []*OfferResponse {
	out := make([]*OfferResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromOfferView(v))
	}
	return out
}
