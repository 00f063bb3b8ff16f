package commands

import (
	"context"
	"errors"
	"time"

	"carmarket-engine/internal/domain/reservation"
	"carmarket-engine/internal/events"
	"carmarket-engine/internal/infra"
	"carmarket-engine/internal/pkg/clock"
	"carmarket-engine/internal/pkg/errs"
	"carmarket-engine/internal/usecase/queries"
	"carmarket-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	CarID   uuid.UUID
	StartAt time.Time
	EndAt   time.Time
	Contact reservation.ContactInfo
	Note    string
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput, requesterID uuid.UUID) (*queries.ReservationView, error)
	Transition(ctx context.Context, reservationID, actorID uuid.UUID, target string) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	cars       CarReader
	conflicts  ConflictIndex
	uow        shared.UnitOfWork
	dispatcher EventDispatcher
	clock      clock.Clock
}

func NewReservationCommands(
	cars CarReader,
	conflicts ConflictIndex,
	uow shared.UnitOfWork,
	dispatcher EventDispatcher,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		cars:       cars,
		conflicts:  conflicts,
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clk,
	}
}

// Create books a stay. The overlap pre-check catches the common case; the
// store's exclusion constraint decides the race, and a constraint loss is
// reported as the same slot conflict the pre-check would have produced.
func (c *reservationCommandsImpl) Create(
	ctx context.Context,
	in CreateReservationInput,
	requesterID uuid.UUID,
) (*queries.ReservationView, error) {
	stay, err := reservation.NewStayRange(in.StartAt, in.EndAt)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStay)
	}

	listing, err := c.cars.FindByID(ctx, in.CarID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCarNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	overlapping, err := c.conflicts.FindOverlapping(ctx, in.CarID, stay.Start(), stay.End())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if len(overlapping) > 0 {
		return nil, ErrSlotUnavailable
	}

	entity := reservation.NewReservation(listing, requesterID, stay, in.Contact, in.Note, c.clock.Now())

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().Create(ctx, entity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// Lost the overlap race at commit time.
			return nil, errs.Mark(err, ErrSlotUnavailable)
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	view := reservationViewFromEntity(entity)
	c.dispatcher.Dispatch(
		events.Event{Name: events.ReservationCreated, Payload: view, OccurredAt: c.clock.Now()},
		reservationRooms(entity),
	)
	return view, nil
}

// Transition moves a reservation into one of the four caller-reachable
// statuses under the actor-gated permission rules. The row is locked for the
// duration so the permission check and the write are atomic.
func (c *reservationCommandsImpl) Transition(
	ctx context.Context,
	reservationID, actorID uuid.UUID,
	target string,
) (*queries.ReservationView, error) {
	status := reservation.Status(target)
	if !status.IsTransitionTarget() {
		return nil, ErrInvalidStatus
	}

	var entity *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Reservations().FindForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}

		if err := found.Transition(actorID, status, c.clock.Now()); err != nil {
			return err
		}

		if err := tx.Reservations().UpdateStatus(ctx, found.ID(), found.Status(), found.UpdatedAt()); err != nil {
			return err
		}
		entity = found
		return nil
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.Mark(err, ErrReservationNotFound)
		case infra.IsKind(err, infra.KindConflict):
			// Re-confirming after the range was freed and retaken trips the
			// exclusion constraint; report it as the usual slot conflict.
			return nil, errs.Mark(err, ErrSlotUnavailable)
		case errors.Is(err, reservation.ErrActorNotAllowed):
			return nil, errs.Mark(err, ErrForbidden)
		case errors.Is(err, reservation.ErrInvalidTransitionTarget):
			return nil, errs.Mark(err, ErrInvalidStatus)
		default:
			return nil, errs.Mark(err, ErrDatabaseOperation)
		}
	}

	view := reservationViewFromEntity(entity)
	c.dispatcher.Dispatch(
		events.Event{Name: events.ReservationUpdated, Payload: view, OccurredAt: c.clock.Now()},
		reservationRooms(entity),
	)
	return view, nil
}

func reservationRooms(res *reservation.Reservation) []string {
	return events.Rooms(
		events.ResourceRoom(res.CarID().String()),
		events.ParticipantRoom(res.RequesterID()),
		events.ParticipantRoom(res.OwnerID()),
	)
}

func reservationViewFromEntity(res *reservation.Reservation) *queries.ReservationView {
	contact := res.Contact()
	return &queries.ReservationView{
		ID:           res.ID(),
		CarID:        res.CarID(),
		RequesterID:  res.RequesterID(),
		OwnerID:      res.OwnerID(),
		StartAt:      res.Stay().Start(),
		EndAt:        res.Stay().End(),
		Status:       res.Status().String(),
		TotalCents:   res.Total().Cents(),
		Currency:     res.Currency(),
		ContactName:  optional(contact.Name),
		ContactEmail: optional(contact.Email),
		ContactPhone: optional(contact.Phone),
		Note:         optional(res.Note()),
		CreatedAt:    res.CreatedAt(),
		UpdatedAt:    res.UpdatedAt(),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
