package negotiation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount           = errors.New("offer amount must be positive")
	ErrSameParty               = errors.New("sender and recipient must differ")
	ErrInvalidResolutionTarget = errors.New("invalid resolution target status")
	ErrActorNotAllowed         = errors.New("actor is not allowed to resolve this offer")
	ErrAlreadyFinalized        = errors.New("offer negotiation is already finalized")
)

// Offer is one negotiation move inside a conversation thread. It rides in the
// generic message stream but carries its own status machine, which is fully
// status-gated: once resolution leaves pending nothing moves it again.
type Offer struct {
	id              uuid.UUID
	conversationKey string
	senderID        uuid.UUID
	recipientID     uuid.UUID
	listing         ListingRef
	kind            Kind
	amountCents     int64
	currency        string
	terms           string
	expiresAt       *time.Time
	status          Status
	replyTo         *uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time
}

func NewOffer(
	senderID, recipientID uuid.UUID,
	listing ListingRef,
	amountCents int64,
	currency string,
	terms string,
	expiresAt *time.Time,
	replyTo *uuid.UUID,
	now time.Time,
) (*Offer, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if senderID == recipientID {
		return nil, ErrSameParty
	}
	if currency == "" {
		currency = "USD"
	}

	kind := KindOffer
	if replyTo != nil {
		kind = KindCounterOffer
	}

	return &Offer{
		id:              uuid.New(),
		conversationKey: ConversationKey(senderID, recipientID, listing),
		senderID:        senderID,
		recipientID:     recipientID,
		listing:         listing,
		kind:            kind,
		amountCents:     amountCents,
		currency:        currency,
		terms:           terms,
		expiresAt:       expiresAt,
		status:          StatusPending,
		replyTo:         replyTo,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructOffer(
	id uuid.UUID,
	conversationKey string,
	senderID, recipientID uuid.UUID,
	listing ListingRef,
	kind Kind,
	amountCents int64,
	currency string,
	terms string,
	expiresAt *time.Time,
	status Status,
	replyTo *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Offer {
	return &Offer{
		id:              id,
		conversationKey: conversationKey,
		senderID:        senderID,
		recipientID:     recipientID,
		listing:         listing,
		kind:            kind,
		amountCents:     amountCents,
		currency:        currency,
		terms:           terms,
		expiresAt:       expiresAt,
		status:          status,
		replyTo:         replyTo,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Resolve applies the one allowed transition. Withdrawal belongs to the
// author; acceptance and rejection belong to the recipient. The terminal
// guard fires before the permission check so a finalized offer answers
// conflict to every actor.
func (o *Offer) Resolve(actorID uuid.UUID, target Status, now time.Time) error {
	if !target.IsResolutionTarget() {
		return ErrInvalidResolutionTarget
	}
	if o.status.IsTerminal() {
		return ErrAlreadyFinalized
	}

	switch target {
	case StatusWithdrawn:
		if actorID != o.senderID {
			return ErrActorNotAllowed
		}
	case StatusAccepted, StatusRejected:
		if actorID != o.recipientID {
			return ErrActorNotAllowed
		}
	}

	o.status = target
	o.updatedAt = now
	return nil
}

func (o *Offer) ID() uuid.UUID           { return o.id }
func (o *Offer) ConversationKey() string { return o.conversationKey }
func (o *Offer) SenderID() uuid.UUID     { return o.senderID }
func (o *Offer) RecipientID() uuid.UUID  { return o.recipientID }
func (o *Offer) Listing() ListingRef     { return o.listing }
func (o *Offer) Kind() Kind              { return o.kind }
func (o *Offer) AmountCents() int64      { return o.amountCents }
func (o *Offer) Currency() string        { return o.currency }
func (o *Offer) Terms() string           { return o.terms }
func (o *Offer) ExpiresAt() *time.Time   { return o.expiresAt }
func (o *Offer) Status() Status          { return o.status }
func (o *Offer) ReplyTo() *uuid.UUID     { return o.replyTo }
func (o *Offer) CreatedAt() time.Time    { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time    { return o.updatedAt }
