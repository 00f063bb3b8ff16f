package commands

import (
	"context"
	"time"

	"carmarket-engine/internal/domain/car"
	"carmarket-engine/internal/events"
	"carmarket-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

// CarReader resolves catalog listings for validation and pricing.
type CarReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*car.Car, error)
}

// ConflictIndex answers whether any slot-blocking reservation overlaps a
// half-open interval. It is advisory: the store constraint is the authority
// under concurrency, this read keeps the common case from reaching commit.
type ConflictIndex interface {
	FindOverlapping(ctx context.Context, carID uuid.UUID, start, end time.Time) ([]queries.ConflictingStay, error)
}

// EventDispatcher is the fire-and-forget fan-out sink. Implementations must
// never block the caller; *events.Router satisfies this.
type EventDispatcher interface {
	Dispatch(ev events.Event, roomIDs []string)
}
