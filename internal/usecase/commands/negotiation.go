package commands

import (
	"context"
	"errors"
	"time"

	"carmarket-engine/internal/domain/negotiation"
	"carmarket-engine/internal/events"
	"carmarket-engine/internal/infra"
	"carmarket-engine/internal/pkg/clock"
	"carmarket-engine/internal/pkg/errs"
	"carmarket-engine/internal/usecase/queries"
	"carmarket-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type SubmitOfferInput struct {
	// CarRef may be a catalog UUID, an opaque external listing id, or empty
	// for a negotiation not scoped to a car.
	CarRef      string
	RecipientID uuid.UUID
	AmountCents int64
	Currency    string
	Terms       string
	ExpiresAt   *time.Time
	ReplyTo     *uuid.UUID
}

type NegotiationCommands interface {
	Submit(ctx context.Context, in SubmitOfferInput, senderID uuid.UUID) (*queries.OfferView, error)
	Resolve(ctx context.Context, offerID, actorID uuid.UUID, target string) (*queries.OfferView, error)
}

type negotiationCommandsImpl struct {
	cars       CarReader
	uow        shared.UnitOfWork
	dispatcher EventDispatcher
	clock      clock.Clock
}

func NewNegotiationCommands(
	cars CarReader,
	uow shared.UnitOfWork,
	dispatcher EventDispatcher,
	clk clock.Clock,
) NegotiationCommands {
	return &negotiationCommandsImpl{
		cars:       cars,
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clk,
	}
}

// Submit opens or continues a negotiation. Catalog-format listing refs must
// resolve in the catalog; opaque refs pass through unchecked since not every
// negotiated listing lives in the authoritative catalog.
func (c *negotiationCommandsImpl) Submit(
	ctx context.Context,
	in SubmitOfferInput,
	senderID uuid.UUID,
) (*queries.OfferView, error) {
	ref := negotiation.ParseListingRef(in.CarRef)
	if ref.IsCatalog() {
		if _, err := c.cars.FindByID(ctx, ref.CatalogID()); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, ErrCarNotFound)
			}
			return nil, errs.Mark(err, ErrDatabaseOperation)
		}
	}

	offer, err := negotiation.NewOffer(
		senderID, in.RecipientID, ref,
		in.AmountCents, in.Currency, in.Terms,
		in.ExpiresAt, in.ReplyTo, c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidOffer)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Messages().CreateOffer(ctx, offer)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	view := offerViewFromEntity(offer)
	c.dispatcher.Dispatch(
		events.Event{Name: events.OfferCreated, Payload: view, OccurredAt: c.clock.Now()},
		offerRooms(offer),
	)
	return view, nil
}

// Resolve applies the single allowed negotiation transition. Unlike
// reservation transitions this is fully status-gated: anything past pending
// answers with a finalized conflict no matter who asks.
func (c *negotiationCommandsImpl) Resolve(
	ctx context.Context,
	offerID, actorID uuid.UUID,
	target string,
) (*queries.OfferView, error) {
	status := negotiation.Status(target)
	if !status.IsResolutionTarget() {
		return nil, ErrInvalidStatus
	}

	var offer *negotiation.Offer
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Messages().FindOfferForUpdate(ctx, offerID)
		if err != nil {
			return err
		}

		if err := found.Resolve(actorID, status, c.clock.Now()); err != nil {
			return err
		}

		if err := tx.Messages().UpdateNegotiationStatus(ctx, found.ID(), found.Status(), found.UpdatedAt()); err != nil {
			return err
		}
		offer = found
		return nil
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.Mark(err, ErrOfferNotFound)
		case errors.Is(err, negotiation.ErrAlreadyFinalized):
			return nil, errs.Mark(err, ErrOfferFinalized)
		case errors.Is(err, negotiation.ErrActorNotAllowed):
			return nil, errs.Mark(err, ErrForbidden)
		case errors.Is(err, negotiation.ErrInvalidResolutionTarget):
			return nil, errs.Mark(err, ErrInvalidStatus)
		default:
			return nil, errs.Mark(err, ErrDatabaseOperation)
		}
	}

	view := offerViewFromEntity(offer)
	c.dispatcher.Dispatch(
		events.Event{Name: events.OfferUpdated, Payload: view, OccurredAt: c.clock.Now()},
		offerRooms(offer),
	)
	return view, nil
}

func offerRooms(offer *negotiation.Offer) []string {
	rooms := make([]string, 0, 4)
	if !offer.Listing().IsZero() {
		rooms = append(rooms, events.ResourceRoom(offer.Listing().String()))
	}
	rooms = append(rooms,
		events.ParticipantRoom(offer.SenderID()),
		events.ParticipantRoom(offer.RecipientID()),
		events.ConversationRoom(offer.ConversationKey()),
	)
	return events.Rooms(rooms...)
}

func offerViewFromEntity(offer *negotiation.Offer) *queries.OfferView {
	var carRef *string
	if !offer.Listing().IsZero() {
		ref := offer.Listing().String()
		carRef = &ref
	}
	return &queries.OfferView{
		ID:              offer.ID(),
		ConversationKey: offer.ConversationKey(),
		SenderID:        offer.SenderID(),
		RecipientID:     offer.RecipientID(),
		CarRef:          carRef,
		Kind:            string(offer.Kind()),
		AmountCents:     offer.AmountCents(),
		Currency:        offer.Currency(),
		Terms:           optional(offer.Terms()),
		ExpiresAt:       offer.ExpiresAt(),
		Status:          offer.Status().String(),
		ReplyTo:         offer.ReplyTo(),
		CreatedAt:       offer.CreatedAt(),
		UpdatedAt:       offer.UpdatedAt(),
	}
}
