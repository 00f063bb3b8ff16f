//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"carmarket-engine/internal/domain/negotiation"
	"carmarket-engine/internal/events"
	"carmarket-engine/internal/infra"
	"carmarket-engine/internal/pkg/clock"
	"carmarket-engine/internal/usecase/commands"
	"carmarket-engine/internal/usecase/shared"
	"carmarket-engine/tests/common/builder"
	commandsmock "carmarket-engine/tests/mock/commands"
	sharedmock "carmarket-engine/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NegotiationCommandsTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockCars       *commandsmock.MockCarReader
	mockUow        *sharedmock.MockUnitOfWork
	mockTx         *sharedmock.MockTx
	mockWriter     *sharedmock.MockMessageWriter
	mockDispatcher *commandsmock.MockEventDispatcher
	clock          *clock.MockClock
	commands       commands.NegotiationCommands
}

func (s *NegotiationCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCars = commandsmock.NewMockCarReader(s.mockCtrl)
	s.mockUow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockWriter = sharedmock.NewMockMessageWriter(s.mockCtrl)
	s.mockDispatcher = commandsmock.NewMockEventDispatcher(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	s.mockTx.EXPECT().Messages().Return(s.mockWriter).AnyTimes()
	s.commands = commands.NewNegotiationCommands(s.mockCars, s.mockUow, s.mockDispatcher, s.clock)
}

func (s *NegotiationCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestNegotiationCommandsSuite(t *testing.T) {
	suite.Run(t, new(NegotiationCommandsTestSuite))
}

func (s *NegotiationCommandsTestSuite) expectWithin() {
	s.mockUow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		},
	)
}

func (s *NegotiationCommandsTestSuite) submitInput(b *builder.OfferBuilder) commands.SubmitOfferInput {
	return commands.SubmitOfferInput{
		CarRef:      b.CarRef,
		RecipientID: b.RecipientID,
		AmountCents: b.AmountCents,
		Currency:    b.Currency,
		Terms:       b.Terms,
		ExpiresAt:   b.ExpiresAt,
		ReplyTo:     b.ReplyTo,
	}
}

// ================================================================================
// TestSubmit
// ================================================================================

func (s *NegotiationCommandsTestSuite) TestSubmit() {
	s.Run("success: catalog listing is validated and the offer fans out", func() {
		b := builder.NewOfferBuilder()
		carID := uuid.MustParse(b.CarRef)
		listing, err := builder.NewCarBuilder().With(func(cb *builder.CarBuilder) {
			cb.ID = carID
		}).BuildDomain()
		s.Require().NoError(err)

		s.mockCars.EXPECT().FindByID(gomock.Any(), carID).Return(listing, nil)
		s.expectWithin()
		s.mockWriter.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).Return(nil)

		var dispatchedRooms []string
		s.mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Do(
			func(ev events.Event, rooms []string) {
				s.Equal(events.OfferCreated, ev.Name)
				dispatchedRooms = rooms
			},
		)

		view, err := s.commands.Submit(context.Background(), s.submitInput(b), b.SenderID)
		s.Require().NoError(err)
		s.Equal(b.SenderID, view.SenderID)
		s.Equal(b.RecipientID, view.RecipientID)
		s.Equal("offer", view.Kind)
		s.Equal("pending", view.Status)

		s.Equal([]string{
			events.ResourceRoom(b.CarRef),
			events.ParticipantRoom(b.SenderID),
			events.ParticipantRoom(b.RecipientID),
			events.ConversationRoom(view.ConversationKey),
		}, dispatchedRooms)
	})

	s.Run("opaque listing ref skips the catalog lookup", func() {
		b := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.CarRef = "ext-listing-4711"
		})

		s.expectWithin()
		s.mockWriter.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).Return(nil)
		s.mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any())

		view, err := s.commands.Submit(context.Background(), s.submitInput(b), b.SenderID)
		s.Require().NoError(err)
		s.Require().NotNil(view.CarRef)
		s.Equal("ext-listing-4711", *view.CarRef)
	})

	s.Run("unscoped offer has no resource room", func() {
		b := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.CarRef = ""
		})

		s.expectWithin()
		s.mockWriter.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).Return(nil)

		var dispatchedRooms []string
		s.mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Do(
			func(_ events.Event, rooms []string) {
				dispatchedRooms = rooms
			},
		)

		view, err := s.commands.Submit(context.Background(), s.submitInput(b), b.SenderID)
		s.Require().NoError(err)
		s.Nil(view.CarRef)
		s.Len(dispatchedRooms, 3)
		s.NotContains(dispatchedRooms[0], "resource:")
	})

	s.Run("catalog ref must exist", func() {
		b := builder.NewOfferBuilder()
		s.mockCars.EXPECT().FindByID(gomock.Any(), uuid.MustParse(b.CarRef)).
			Return(nil, infra.WrapRepoErr("car not found", nil, infra.KindNotFound))

		_, err := s.commands.Submit(context.Background(), s.submitInput(b), b.SenderID)
		s.ErrorIs(err, commands.ErrCarNotFound)
	})

	s.Run("non-positive amount", func() {
		b := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.CarRef = ""
			b.AmountCents = 0
		})

		_, err := s.commands.Submit(context.Background(), s.submitInput(b), b.SenderID)
		s.ErrorIs(err, commands.ErrInvalidOffer)
	})

	s.Run("offer to self", func() {
		b := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.CarRef = ""
			b.RecipientID = b.SenderID
		})

		_, err := s.commands.Submit(context.Background(), s.submitInput(b), b.SenderID)
		s.ErrorIs(err, commands.ErrInvalidOffer)
	})

	s.Run("persist failure", func() {
		b := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.CarRef = ""
		})

		s.expectWithin()
		s.mockWriter.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).
			Return(errors.New("write failed"))

		_, err := s.commands.Submit(context.Background(), s.submitInput(b), b.SenderID)
		s.ErrorIs(err, commands.ErrDatabaseOperation)
	})
}

// ================================================================================
// TestResolve
// ================================================================================

func (s *NegotiationCommandsTestSuite) TestResolve() {
	s.Run("success: recipient accepts and the update fans out", func() {
		offer, err := builder.NewOfferBuilder().BuildDomain()
		s.Require().NoError(err)

		s.expectWithin()
		s.mockWriter.EXPECT().FindOfferForUpdate(gomock.Any(), offer.ID()).Return(offer, nil)
		s.mockWriter.EXPECT().UpdateNegotiationStatus(gomock.Any(), offer.ID(), negotiation.StatusAccepted, s.clock.Now()).
			Return(nil)
		s.mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Do(
			func(ev events.Event, _ []string) {
				s.Equal(events.OfferUpdated, ev.Name)
			},
		)

		view, err := s.commands.Resolve(context.Background(), offer.ID(), offer.RecipientID(), "accepted")
		s.Require().NoError(err)
		s.Equal("accepted", view.Status)
	})

	s.Run("invalid target status", func() {
		_, err := s.commands.Resolve(context.Background(), uuid.New(), uuid.New(), "expired")
		s.ErrorIs(err, commands.ErrInvalidStatus)
	})

	s.Run("offer not found", func() {
		id := uuid.New()
		s.expectWithin()
		s.mockWriter.EXPECT().FindOfferForUpdate(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("offer not found", nil, infra.KindNotFound))

		_, err := s.commands.Resolve(context.Background(), id, uuid.New(), "accepted")
		s.ErrorIs(err, commands.ErrOfferNotFound)
	})

	s.Run("already finalized", func() {
		offer, err := builder.NewOfferBuilder().BuildDomain()
		s.Require().NoError(err)
		s.Require().NoError(offer.Resolve(offer.RecipientID(), negotiation.StatusRejected, s.clock.Now()))

		s.expectWithin()
		s.mockWriter.EXPECT().FindOfferForUpdate(gomock.Any(), offer.ID()).Return(offer, nil)

		_, err = s.commands.Resolve(context.Background(), offer.ID(), offer.RecipientID(), "accepted")
		s.ErrorIs(err, commands.ErrOfferFinalized)
	})

	s.Run("unauthorized actor", func() {
		offer, err := builder.NewOfferBuilder().BuildDomain()
		s.Require().NoError(err)

		s.expectWithin()
		s.mockWriter.EXPECT().FindOfferForUpdate(gomock.Any(), offer.ID()).Return(offer, nil)

		_, err = s.commands.Resolve(context.Background(), offer.ID(), offer.SenderID(), "accepted")
		s.ErrorIs(err, commands.ErrForbidden)
	})
}
