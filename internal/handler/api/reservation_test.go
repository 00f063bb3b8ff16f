//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"carmarket-engine/internal/handler/api"
	resdto "carmarket-engine/internal/handler/dto/response"
	"carmarket-engine/internal/usecase/commands"
	"carmarket-engine/internal/usecase/queries"
	"carmarket-engine/tests/common/builder"
	"carmarket-engine/tests/common/httptest"
	"carmarket-engine/tests/common/testutil"
	commandsmock "carmarket-engine/tests/mock/commands"
	queriesmock "carmarket-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testAssertion = "signed-by-gateway"

// principal middleware stand-in: trusts any non-empty assertion header
func fakePrincipal(principalID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Principal-Assertion") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Principal assertion required"})
			return
		}
		c.Set("principal_id", principalID)
		c.Next()
	}
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	principalID  uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.principalID = uuid.New()

	principal := fakePrincipal(s.principalID)
	s.router.POST("/reservations", principal, s.handler.CreateReservation)
	s.router.GET("/reservations", principal, s.handler.ListMyReservations)
	s.router.GET("/reservations/:id", principal, s.handler.GetReservation)
	s.router.PATCH("/reservations/:id/status", principal, s.handler.TransitionReservation)
	s.router.GET("/cars/:id/quote", principal, s.handler.GetQuote)
	s.router.GET("/cars/:id/availability", principal, s.handler.CheckAvailability)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"
	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildView()

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.principalID).
			Return(returnView, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testAssertion)

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(returnView.ID, resp.ID)
		s.Equal(returnView.Status, resp.Status)
		s.Equal(returnView.TotalCents, resp.TotalCents)
	})

	s.Run("missing assertion: returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("validation: missing required fields return 400", func() {
		cases := []string{"car_id", "start_at", "end_at"}
		for _, field := range cases {
			body := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, testAssertion)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("invalid stay: returns 400", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.principalID).
			Return(nil, commands.ErrInvalidStay)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid stay range")
	})

	s.Run("unknown car: returns 404", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.principalID).
			Return(nil, commands.ErrCarNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Car not found")
	})

	s.Run("slot taken: returns 409", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.principalID).
			Return(nil, commands.ErrSlotUnavailable)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not available")
	})

	s.Run("internal failure: returns 500", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.principalID).
			Return(nil, commands.ErrDatabaseOperation)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	returnView := builder.NewReservationBuilder().BuildView()

	s.Run("success: returns 200 OK", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).Return(returnView, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+returnView.ID.String(), nil, testAssertion)

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(returnView.ID, resp.ID)
	})

	s.Run("malformed id: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("not found: returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, queries.ErrReservationNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestListMyReservations
// ================================================================================

func (s *ReservationHandlerTestSuite) TestListMyReservations() {
	s.Run("success: returns the caller's bookings", func() {
		items := []*queries.ReservationListItem{
			{ID: uuid.New(), CarID: uuid.New(), Status: "pending", TotalCents: 30000, Currency: "USD"},
			{ID: uuid.New(), CarID: uuid.New(), Status: "confirmed", TotalCents: 45000, Currency: "USD"},
		}
		s.mockQueries.EXPECT().ListByParty(gomock.Any(), s.principalID).Return(items, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, testAssertion)

		var resp []resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
		s.Equal(items[0].ID, resp[0].ID)
	})

	s.Run("empty list: returns 200 with empty array", func() {
		s.mockQueries.EXPECT().ListByParty(gomock.Any(), s.principalID).Return(nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, testAssertion)

		var resp []resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Empty(resp)
	})
}

// ================================================================================
// TestTransitionReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestTransitionReservation() {
	returnView := builder.NewReservationBuilder().BuildView()
	returnView.Status = "confirmed"
	url := "/reservations/" + returnView.ID.String() + "/status"
	reqBody := map[string]string{"status": "confirmed"}

	s.Run("success: returns 200 OK", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), returnView.ID, s.principalID, "confirmed").
			Return(returnView, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, testAssertion)

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("confirmed", resp.Status)
	})

	s.Run("missing status: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]string{}, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("invalid target: returns 400", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), returnView.ID, s.principalID, "parked").
			Return(nil, commands.ErrInvalidStatus)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]string{"status": "parked"}, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid target status")
	})

	s.Run("forbidden actor: returns 403", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), returnView.ID, s.principalID, "confirmed").
			Return(nil, commands.ErrForbidden)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Not allowed")
	})

	s.Run("not found: returns 404", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), returnView.ID, s.principalID, "confirmed").
			Return(nil, commands.ErrReservationNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("range retaken since: returns 409", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), returnView.ID, s.principalID, "confirmed").
			Return(nil, commands.ErrSlotUnavailable)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not available")
	})
}

// ================================================================================
// TestGetQuote
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetQuote() {
	carID := uuid.New()
	url := "/cars/" + carID.String() + "/quote?start_at=2026-04-01T10:00:00Z&end_at=2026-04-04T10:00:00Z"

	s.Run("success: returns 200 with the price breakdown", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), carID, gomock.Any(), gomock.Any()).
			Return(&queries.QuoteView{
				Days: 3, DailyRateCents: 10000, SubtotalCents: 30000,
				DepositCents: 6000, TotalCents: 36000, Currency: "USD",
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, testAssertion)

		var resp resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(3, resp.Days)
		s.Equal(int64(36000), resp.TotalCents)
	})

	s.Run("missing time params: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cars/"+carID.String()+"/quote", nil, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("unknown car: returns 404", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), carID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrCarNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, testAssertion)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Car not found")
	})
}

// ================================================================================
// TestCheckAvailability
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCheckAvailability() {
	carID := uuid.New()
	url := "/cars/" + carID.String() + "/availability?start_at=2026-04-01T10:00:00Z&end_at=2026-04-04T10:00:00Z"

	s.Run("free range: available with no conflicts", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), carID, gomock.Any(), gomock.Any()).
			Return(&queries.AvailabilityView{Available: true, Conflicts: []queries.ConflictingStay{}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, testAssertion)

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.True(resp.Available)
		s.Empty(resp.Conflicts)
	})

	s.Run("occupied range: reports the blocking stays", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), carID, gomock.Any(), gomock.Any()).
			Return(&queries.AvailabilityView{
				Available: false,
				Conflicts: []queries.ConflictingStay{{Status: "confirmed"}},
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, testAssertion)

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.False(resp.Available)
		s.Len(resp.Conflicts, 1)
	})
}
