package shared

import (
	"context"
	"time"

	"carmarket-engine/internal/domain/negotiation"
	"carmarket-engine/internal/domain/reservation"

	"github.com/google/uuid"
)

// UnitOfWork scopes write operations to one store transaction. Every mutation
// in this engine touches a single aggregate, so Within exists for
// read-check-write atomicity (transition/resolve) rather than cross-entity
// coordination.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx bundles the write repositories bound to one open transaction.
type Tx interface {
	Reservations() ReservationWriter
	Messages() MessageWriter
}

type ReservationWriter interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	// FindForUpdate loads and row-locks a reservation so the
	// check-permission-then-write sequence is atomic per document.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status, updatedAt time.Time) error
}

type MessageWriter interface {
	CreateOffer(ctx context.Context, offer *negotiation.Offer) error
	// FindOfferForUpdate resolves id only when it is an offer-kind message.
	FindOfferForUpdate(ctx context.Context, id uuid.UUID) (*negotiation.Offer, error)
	UpdateNegotiationStatus(ctx context.Context, id uuid.UUID, status negotiation.Status, updatedAt time.Time) error
}
