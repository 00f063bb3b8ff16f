package api

import (
	"errors"
	"net/http"
	"time"

	"carmarket-engine/internal/domain/reservation"
	reqdto "carmarket-engine/internal/handler/dto/request"
	resdto "carmarket-engine/internal/handler/dto/response"
	"carmarket-engine/internal/handler/middleware"
	"carmarket-engine/internal/usecase/commands"
	"carmarket-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	qrys queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Create reservation
// @Description Book a car for a date range
// @Tags reservations
// @Accept json
// @Produce json
// @Security GatewayAssertion
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	requesterID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	in := commands.CreateReservationInput{
		CarID:   req.CarID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Contact: reservation.ContactInfo{
			Name:  derefString(req.ContactName),
			Email: derefString(req.ContactEmail),
			Phone: derefString(req.ContactPhone),
		},
		Note: req.GetNote(),
	}

	view, err := h.commands.Create(c.Request.Context(), in, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStay):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid stay range",
			})
		case errors.Is(err, commands.ErrCarNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Car not found",
			})
		case errors.Is(err, commands.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Requested dates are not available",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Security GatewayAssertion
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List my reservations
// @Description List reservations where the caller is requester or owner
// @Tags reservations
// @Produce json
// @Security GatewayAssertion
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) ListMyReservations(c *gin.Context) {
	userID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.queries.ListByParty(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	responses := make([]*resdto.ReservationListResponse, 0, len(views))
	for _, v := range views {
		responses = append(responses, resdto.FromReservationListItem(v))
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Transition reservation status
// @Description Move a reservation to confirmed, declined, completed or cancelled
// @Tags reservations
// @Accept json
// @Produce json
// @Security GatewayAssertion
// @Param id path string true "Reservation ID"
// @Param request body reqdto.TransitionReservationRequest true "Target status"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/status [patch]
func (h *ReservationHandler) TransitionReservation(c *gin.Context) {
	actorID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.TransitionReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.commands.Transition(c.Request.Context(), id, actorID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid target status",
			})
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to perform this transition",
			})
		case errors.Is(err, commands.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Requested dates are not available",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Quote a stay
// @Description Price a prospective stay for a car
// @Tags cars
// @Produce json
// @Security GatewayAssertion
// @Param id path string true "Car ID"
// @Param start_at query string true "Stay start (RFC 3339)"
// @Param end_at query string true "Stay end (RFC 3339)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cars/{id}/quote [get]
func (h *ReservationHandler) GetQuote(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid car ID format",
		})
		return
	}

	startAt, endAt, err := stayRangeParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	view, err := h.queries.Quote(c.Request.Context(), carID, startAt, endAt)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidStay):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid stay range",
			})
		case errors.Is(err, queries.ErrCarNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Car not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

// @Summary Check availability
// @Description Report whether a car is free for a date range, with the blocking stays
// @Tags cars
// @Produce json
// @Security GatewayAssertion
// @Param id path string true "Car ID"
// @Param start_at query string true "Stay start (RFC 3339)"
// @Param end_at query string true "Stay end (RFC 3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cars/{id}/availability [get]
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid car ID format",
		})
		return
	}

	startAt, endAt, err := stayRangeParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	view, err := h.queries.CheckAvailability(c.Request.Context(), carID, startAt, endAt)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidStay):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid stay range",
			})
		case errors.Is(err, queries.ErrCarNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Car not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

var errBadStayParams = errors.New("start_at and end_at must be RFC 3339 timestamps")

func stayRangeParams(c *gin.Context) (time.Time, time.Time, error) {
	startAt, err := time.Parse(time.RFC3339, c.Query("start_at"))
	if err != nil {
		return time.Time{}, time.Time{}, errBadStayParams
	}
	endAt, err := time.Parse(time.RFC3339, c.Query("end_at"))
	if err != nil {
		return time.Time{}, time.Time{}, errBadStayParams
	}
	return startAt, endAt, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
