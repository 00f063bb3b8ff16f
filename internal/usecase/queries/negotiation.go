package queries

import (
	"context"

	"github.com/google/uuid"
)

type OfferReadStore interface {
	FindOfferViewsByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*OfferView, error)
	FindOfferViewsByConversation(ctx context.Context, conversationKey string) ([]*OfferView, error)
}

type OfferQueries interface {
	// ListReceived is the user's offer inbox, newest first.
	ListReceived(ctx context.Context, userID uuid.UUID) ([]*OfferView, error)
	// ListThread is one conversation's negotiation history, oldest first.
	ListThread(ctx context.Context, conversationKey string) ([]*OfferView, error)
}

type offerQueriesImpl struct {
	offers OfferReadStore
}

func NewOfferQueries(offers OfferReadStore) OfferQueries {
	return &offerQueriesImpl{offers: offers}
}

func (q *offerQueriesImpl) ListReceived(ctx context.Context, userID uuid.UUID) ([]*OfferView, error) {
	return q.offers.FindOfferViewsByRecipient(ctx, userID)
}

func (q *offerQueriesImpl) ListThread(ctx context.Context, conversationKey string) ([]*OfferView, error) {
	return q.offers.FindOfferViewsByConversation(ctx, conversationKey)
}
