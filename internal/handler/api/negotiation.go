package api

import (
	"errors"
	"net/http"

	reqdto "carmarket-engine/internal/handler/dto/request"
	resdto "carmarket-engine/internal/handler/dto/response"
	"carmarket-engine/internal/handler/middleware"
	"carmarket-engine/internal/usecase/commands"
	"carmarket-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NegotiationHandler struct {
	commands commands.NegotiationCommands
	queries  queries.OfferQueries
}

func NewNegotiationHandler(
	cmds commands.NegotiationCommands,
	qrys queries.OfferQueries,
) *NegotiationHandler {
	return &NegotiationHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Submit offer
// @Description Open or continue a price negotiation
// @Tags offers
// @Accept json
// @Produce json
// @Security GatewayAssertion
// @Param request body reqdto.SubmitOfferRequest true "Offer request"
// @Success 201 {object} resdto.OfferResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /offers [post]
func (h *NegotiationHandler) SubmitOffer(c *gin.Context) {
	senderID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.SubmitOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	in := commands.SubmitOfferInput{
		CarRef:      req.GetCarRef(),
		RecipientID: req.RecipientID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Terms:       derefString(req.Terms),
		ExpiresAt:   req.ExpiresAt,
		ReplyTo:     req.ReplyTo,
	}

	view, err := h.commands.Submit(c.Request.Context(), in, senderID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidOffer):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid offer",
			})
		case errors.Is(err, commands.ErrCarNotFound):
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

	c.JSON(http.StatusCreated, resdto.FromOfferView(view))
}

// @Summary List received offers
// @Description List offers addressed to the caller, newest first
// @Tags offers
// @Produce json
// @Security GatewayAssertion
// @Success 200 {array} resdto.OfferResponse
// @Failure 401 {object} map[string]string
// @Router /offers/received [get]
func (h *NegotiationHandler) ListReceivedOffers(c *gin.Context) {
	userID, ok := middleware.GetPrincipalID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.queries.ListReceived(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOfferViews(views))
}

// @Summary List conversation offers
// @Description List one conversation's negotiation history, oldest first
// @Tags offers
// @Produce json
// @Security GatewayAssertion
// @Param key path string true "Conversation key"
// @Success 200 {array} resdto.OfferResponse
// @Failure 401 {object} map[string]string
// @Router /conversations/{key}/offers [get]
func (h *NegotiationHandler) ListConversationOffers(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Conversation key required",
		})
		return
	}

	views, err := h.queries.ListThread(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOfferViews(views))
}

// @Summary Resolve offer
// @Description Accept, reject or withdraw a pending offer
// @Tags offers
// @Accept json
// @Produce json
// @Security GatewayAssertion
// @Param id path string true "Offer ID"
// @Param request body reqdto.ResolveOfferRequest true "Target status"
// @Success 200 {object} resdto.OfferResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /offers/{id}/status [patch]
func (h *NegotiationHandler) ResolveOffer(c *gin.Context) {
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
			"error": "Invalid offer ID format",
		})
		return
	}

	var req reqdto.ResolveOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.commands.Resolve(c.Request.Context(), id, actorID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid target status",
			})
		case errors.Is(err, commands.ErrOfferNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Offer not found",
			})
		case errors.Is(err, commands.ErrOfferFinalized):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Offer is already finalized",
			})
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to resolve this offer",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOfferView(view))
}
