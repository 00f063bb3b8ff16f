//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"carmarket-engine/internal/domain/reservation"
	"carmarket-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.Car.ID, actual.CarID())
		assert.Equal(t, b.RequesterID, actual.RequesterID())
		assert.Equal(t, b.Car.OwnerID, actual.OwnerID())
		assert.Equal(t, reservation.StatusPending, actual.Status())
		assert.True(t, actual.BlocksSlot())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("total is days times daily rate without deposit", func(t *testing.T) {
		b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Car.DailyRateCents = 10000
			b.EndAt = b.StartAt.AddDate(0, 0, 3)
		})
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, int64(30000), actual.Total().Cents())
	})

	t.Run("sub-day stay bills one day", func(t *testing.T) {
		b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Car.DailyRateCents = 8000
			b.EndAt = b.StartAt.Add(5 * time.Hour)
		})
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, int64(8000), actual.Total().Cents())
	})
}

func TestReservationTransition(t *testing.T) {
	type transitionCase struct {
		name   string
		target reservation.Status
		actor  func(r *reservation.Reservation) uuid.UUID
		errIs  error
	}

	stranger := uuid.New()
	owner := func(r *reservation.Reservation) uuid.UUID { return r.OwnerID() }
	requester := func(r *reservation.Reservation) uuid.UUID { return r.RequesterID() }
	outsider := func(*reservation.Reservation) uuid.UUID { return stranger }

	cases := []transitionCase{
		{name: "owner confirms", target: reservation.StatusConfirmed, actor: owner},
		{name: "owner declines", target: reservation.StatusDeclined, actor: owner},
		{name: "owner completes", target: reservation.StatusCompleted, actor: owner},
		{name: "owner cancels", target: reservation.StatusCancelled, actor: owner},
		{name: "requester cancels", target: reservation.StatusCancelled, actor: requester},
		{name: "requester cannot confirm", target: reservation.StatusConfirmed, actor: requester, errIs: reservation.ErrActorNotAllowed},
		{name: "requester cannot decline", target: reservation.StatusDeclined, actor: requester, errIs: reservation.ErrActorNotAllowed},
		{name: "requester cannot complete", target: reservation.StatusCompleted, actor: requester, errIs: reservation.ErrActorNotAllowed},
		{name: "outsider cannot cancel", target: reservation.StatusCancelled, actor: outsider, errIs: reservation.ErrActorNotAllowed},
		{name: "pending is not a target", target: reservation.StatusPending, actor: owner, errIs: reservation.ErrInvalidTransitionTarget},
		{name: "unknown status rejected", target: reservation.Status("parked"), actor: owner, errIs: reservation.ErrInvalidTransitionTarget},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := builder.NewReservationBuilder().BuildDomain()
			require.NoError(t, err)

			now := res.CreatedAt().Add(time.Hour)
			err = res.Transition(tc.actor(res), tc.target, now)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, reservation.StatusPending, res.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.target, res.Status())
			assert.Equal(t, now, res.UpdatedAt())
		})
	}

	t.Run("terminal booking can be re-transitioned by an authorized actor", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		now := res.CreatedAt().Add(time.Hour)
		require.NoError(t, res.Transition(res.OwnerID(), reservation.StatusDeclined, now))
		require.NoError(t, res.Transition(res.OwnerID(), reservation.StatusConfirmed, now.Add(time.Hour)))
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
	})
}

func TestStatusBlocksSlot(t *testing.T) {
	assert.True(t, reservation.StatusPending.BlocksSlot())
	assert.True(t, reservation.StatusConfirmed.BlocksSlot())
	assert.False(t, reservation.StatusCancelled.BlocksSlot())
	assert.False(t, reservation.StatusDeclined.BlocksSlot())
	assert.False(t, reservation.StatusCompleted.BlocksSlot())
}
