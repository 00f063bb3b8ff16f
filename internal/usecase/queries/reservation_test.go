//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"carmarket-engine/internal/infra"
	"carmarket-engine/internal/usecase/queries"
	"carmarket-engine/tests/common/builder"
	queriesmock "carmarket-engine/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationQueriesTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockCars         *queriesmock.MockCarReadStore
	mockReservations *queriesmock.MockReservationReadStore
	queries          queries.ReservationQueries
}

func (s *ReservationQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCars = queriesmock.NewMockCarReadStore(s.mockCtrl)
	s.mockReservations = queriesmock.NewMockReservationReadStore(s.mockCtrl)
	s.queries = queries.NewReservationQueries(s.mockCars, s.mockReservations)
}

func (s *ReservationQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReservationQueriesTestSuite))
}

var (
	qStart = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	qEnd   = qStart.AddDate(0, 0, 3)
)

func (s *ReservationQueriesTestSuite) TestQuote() {
	s.Run("success: prices the stay with deposit", func() {
		carView := builder.NewCarBuilder().BuildView()
		s.mockCars.EXPECT().FindViewByID(gomock.Any(), carView.ID).Return(carView, nil)

		quote, err := s.queries.Quote(context.Background(), carView.ID, qStart, qEnd)
		s.Require().NoError(err)
		s.Equal(3, quote.Days)
		s.Equal(int64(30000), quote.SubtotalCents)
		s.Equal(int64(6000), quote.DepositCents)
		s.Equal(int64(36000), quote.TotalCents)
		s.Equal("USD", quote.Currency)
	})

	s.Run("invalid stay", func() {
		_, err := s.queries.Quote(context.Background(), uuid.New(), qEnd, qStart)
		s.ErrorIs(err, queries.ErrInvalidStay)
	})

	s.Run("car not found", func() {
		id := uuid.New()
		s.mockCars.EXPECT().FindViewByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("car not found", nil, infra.KindNotFound))

		_, err := s.queries.Quote(context.Background(), id, qStart, qEnd)
		s.ErrorIs(err, queries.ErrCarNotFound)
	})
}

func (s *ReservationQueriesTestSuite) TestCheckAvailability() {
	s.Run("free range", func() {
		carView := builder.NewCarBuilder().BuildView()
		s.mockCars.EXPECT().FindViewByID(gomock.Any(), carView.ID).Return(carView, nil)
		s.mockReservations.EXPECT().FindOverlapping(gomock.Any(), carView.ID, qStart, qEnd).
			Return(nil, nil)

		view, err := s.queries.CheckAvailability(context.Background(), carView.ID, qStart, qEnd)
		s.Require().NoError(err)
		s.True(view.Available)
		s.NotNil(view.Conflicts)
		s.Empty(view.Conflicts)
	})

	s.Run("occupied range reports conflicts", func() {
		carView := builder.NewCarBuilder().BuildView()
		conflicts := []queries.ConflictingStay{
			{StartAt: qStart, EndAt: qEnd, Status: "pending"},
			{StartAt: qEnd, EndAt: qEnd.AddDate(0, 0, 2), Status: "confirmed"},
		}
		s.mockCars.EXPECT().FindViewByID(gomock.Any(), carView.ID).Return(carView, nil)
		s.mockReservations.EXPECT().FindOverlapping(gomock.Any(), carView.ID, qStart, qEnd).
			Return(conflicts, nil)

		view, err := s.queries.CheckAvailability(context.Background(), carView.ID, qStart, qEnd)
		s.Require().NoError(err)
		s.False(view.Available)
		if diff := cmp.Diff(conflicts, view.Conflicts); diff != "" {
			s.Failf("conflicts mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("car not found", func() {
		id := uuid.New()
		s.mockCars.EXPECT().FindViewByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("car not found", nil, infra.KindNotFound))

		_, err := s.queries.CheckAvailability(context.Background(), id, qStart, qEnd)
		s.ErrorIs(err, queries.ErrCarNotFound)
	})
}

func (s *ReservationQueriesTestSuite) TestGetByID() {
	s.Run("not found maps the repository kind", func() {
		id := uuid.New()
		s.mockReservations.EXPECT().FindViewByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound))

		_, err := s.queries.GetByID(context.Background(), id)
		s.ErrorIs(err, queries.ErrReservationNotFound)
	})
}
