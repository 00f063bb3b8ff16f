//go:build unit || e2e

package builder

import (
	"time"

	domnegotiation "carmarket-engine/internal/domain/negotiation"
	reqdto "carmarket-engine/internal/handler/dto/request"
	"carmarket-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type OfferBuilder struct {
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	CarRef      string
	AmountCents int64
	Currency    string
	Terms       string
	ExpiresAt   *time.Time
	ReplyTo     *uuid.UUID
	Now         time.Time
}

func NewOfferBuilder() *OfferBuilder {
	return &OfferBuilder{
		SenderID:    uuid.New(),
		RecipientID: uuid.New(),
		CarRef:      uuid.New().String(),
		AmountCents: 2500000,
		Currency:    "USD",
		Terms:       "Cash on delivery",
		Now:         time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (b *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(b)
	return b
}

func (b *OfferBuilder) BuildDomain() (*domnegotiation.Offer, error) {
	return domnegotiation.NewOffer(
		b.SenderID, b.RecipientID,
		domnegotiation.ParseListingRef(b.CarRef),
		b.AmountCents, b.Currency, b.Terms,
		b.ExpiresAt, b.ReplyTo, b.Now,
	)
}

func (b *OfferBuilder) BuildSubmitRequestDTO() reqdto.SubmitOfferRequest {
	var carRef *string
	if b.CarRef != "" {
		ref := b.CarRef
		carRef = &ref
	}
	var terms *string
	if b.Terms != "" {
		t := b.Terms
		terms = &t
	}
	return reqdto.SubmitOfferRequest{
		CarRef:      carRef,
		RecipientID: b.RecipientID,
		AmountCents: b.AmountCents,
		Currency:    b.Currency,
		Terms:       terms,
		ExpiresAt:   b.ExpiresAt,
		ReplyTo:     b.ReplyTo,
	}
}

func (b *OfferBuilder) BuildView() *queries.OfferView {
	ref := domnegotiation.ParseListingRef(b.CarRef)
	var carRef *string
	if !ref.IsZero() {
		s := ref.String()
		carRef = &s
	}
	var terms *string
	if b.Terms != "" {
		t := b.Terms
		terms = &t
	}
	kind := domnegotiation.KindOffer
	if b.ReplyTo != nil {
		kind = domnegotiation.KindCounterOffer
	}
	return &queries.OfferView{
		ID:              uuid.New(),
		ConversationKey: domnegotiation.ConversationKey(b.SenderID, b.RecipientID, ref),
		SenderID:        b.SenderID,
		RecipientID:     b.RecipientID,
		CarRef:          carRef,
		Kind:            string(kind),
		AmountCents:     b.AmountCents,
		Currency:        b.Currency,
		Terms:           terms,
		ExpiresAt:       b.ExpiresAt,
		Status:          domnegotiation.StatusPending.String(),
		ReplyTo:         b.ReplyTo,
		CreatedAt:       b.Now,
		UpdatedAt:       b.Now,
	}
}
