package reservation

import (
	"errors"
	"time"

	"carmarket-engine/internal/domain/car"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransitionTarget = errors.New("invalid transition target status")
	ErrActorNotAllowed         = errors.New("actor is not allowed to perform this transition")
)

type Reservation struct {
	id          uuid.UUID
	carID       uuid.UUID
	requesterID uuid.UUID
	ownerID     uuid.UUID
	stay        StayRange
	status      Status
	total       Money
	currency    string
	contact     ContactInfo
	note        string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewReservation books a stay against a car. The owner id is snapshotted at
// booking time so later ownership changes do not reroute permissions or
// notifications for an in-flight booking.
func NewReservation(
	listing *car.Car,
	requesterID uuid.UUID,
	stay StayRange,
	contact ContactInfo,
	note string,
	now time.Time,
) *Reservation {
	total := NewMoney(int64(stay.Days()) * listing.DailyRateCents())

	return &Reservation{
		id:          uuid.New(),
		carID:       listing.ID(),
		requesterID: requesterID,
		ownerID:     listing.OwnerID(),
		stay:        stay,
		status:      StatusPending,
		total:       total,
		currency:    listing.Currency(),
		contact:     contact,
		note:        note,
		createdAt:   now,
		updatedAt:   now,
	}
}

func ReconstructReservation(
	id, carID, requesterID, ownerID uuid.UUID,
	stay StayRange,
	status Status,
	total Money,
	currency string,
	contact ContactInfo,
	note string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		carID:       carID,
		requesterID: requesterID,
		ownerID:     ownerID,
		stay:        stay,
		status:      status,
		total:       total,
		currency:    currency,
		contact:     contact,
		note:        note,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// AuthorizeTransition checks the actor-gated transition rules: confirm,
// decline and complete belong to the owner; cancel belongs to either party.
// The source status is deliberately unrestricted, so a terminal booking can be
// re-transitioned by an authorized actor.
func (r *Reservation) AuthorizeTransition(actorID uuid.UUID, target Status) error {
	if !target.IsTransitionTarget() {
		return ErrInvalidTransitionTarget
	}

	switch target {
	case StatusConfirmed, StatusDeclined, StatusCompleted:
		if actorID != r.ownerID {
			return ErrActorNotAllowed
		}
	case StatusCancelled:
		if actorID != r.ownerID && actorID != r.requesterID {
			return ErrActorNotAllowed
		}
	}
	return nil
}

// Transition applies target after AuthorizeTransition passes.
func (r *Reservation) Transition(actorID uuid.UUID, target Status, now time.Time) error {
	if err := r.AuthorizeTransition(actorID, target); err != nil {
		return err
	}
	r.status = target
	r.updatedAt = now
	return nil
}

func (r *Reservation) BlocksSlot() bool {
	return r.status.BlocksSlot()
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) CarID() uuid.UUID       { return r.carID }
func (r *Reservation) RequesterID() uuid.UUID { return r.requesterID }
func (r *Reservation) OwnerID() uuid.UUID     { return r.ownerID }
func (r *Reservation) Stay() StayRange        { return r.stay }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) Total() Money           { return r.total }
func (r *Reservation) Currency() string       { return r.currency }
func (r *Reservation) Contact() ContactInfo   { return r.contact }
func (r *Reservation) Note() string           { return r.note }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
