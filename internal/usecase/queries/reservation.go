package queries

import (
	"context"
	"time"

	"carmarket-engine/internal/domain/reservation"
	"carmarket-engine/internal/infra"
	"carmarket-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCarNotFound         = errs.New("car not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrInvalidStay         = errs.New("invalid stay range")
)

type CarReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*CarView, error)
}

type ReservationReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindViewsByParty(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
	FindOverlapping(ctx context.Context, carID uuid.UUID, start, end time.Time) ([]ConflictingStay, error)
}

type ReservationQueries interface {
	// Quote prices a prospective stay without touching reservation state.
	Quote(ctx context.Context, carID uuid.UUID, startAt, endAt time.Time) (*QuoteView, error)
	// CheckAvailability reports the blocking reservations instead of failing,
	// so callers can render the occupied ranges.
	CheckAvailability(ctx context.Context, carID uuid.UUID, startAt, endAt time.Time) (*AvailabilityView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByParty(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	cars         CarReadStore
	reservations ReservationReadStore
}

func NewReservationQueries(cars CarReadStore, reservations ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{cars: cars, reservations: reservations}
}

func (q *reservationQueriesImpl) Quote(ctx context.Context, carID uuid.UUID, startAt, endAt time.Time) (*QuoteView, error) {
	stay, err := reservation.NewStayRange(startAt, endAt)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStay)
	}

	listing, err := q.cars.FindViewByID(ctx, carID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCarNotFound)
		}
		return nil, err
	}

	quote := reservation.ComputeQuote(stay, listing.DailyRateCents, listing.Currency)
	return &QuoteView{
		Days:           quote.Days,
		DailyRateCents: quote.DailyRateCents,
		SubtotalCents:  quote.SubtotalCents,
		DepositCents:   quote.DepositCents,
		TotalCents:     quote.TotalCents,
		Currency:       quote.Currency,
	}, nil
}

func (q *reservationQueriesImpl) CheckAvailability(ctx context.Context, carID uuid.UUID, startAt, endAt time.Time) (*AvailabilityView, error) {
	stay, err := reservation.NewStayRange(startAt, endAt)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStay)
	}

	if _, err := q.cars.FindViewByID(ctx, carID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCarNotFound)
		}
		return nil, err
	}

	conflicts, err := q.reservations.FindOverlapping(ctx, carID, stay.Start(), stay.End())
	if err != nil {
		return nil, err
	}
	if conflicts == nil {
		conflicts = []ConflictingStay{}
	}

	return &AvailabilityView{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.reservations.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByParty(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error) {
	return q.reservations.FindViewsByParty(ctx, userID)
}
