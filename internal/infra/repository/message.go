package repository

import (
	"context"
	"errors"
	"time"

	"carmarket-engine/internal/domain/negotiation"
	"carmarket-engine/internal/infra"
	"carmarket-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MessageRepository persists offers as typed rows in the generic message
// stream. Offer-kind filtering happens in SQL so a plain-text message id can
// never resolve to an offer.
type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) WithTx(tx DBTX) *MessageRepository {
	return &MessageRepository{db: tx}
}

const offerColumns = `
	id, conversation_key, kind, sender_id, recipient_id, car_ref,
	amount_cents, currency, terms, expires_at, negotiation_status, reply_to,
	created_at, updated_at`

const offerKindFilter = `kind IN ('offer', 'counter_offer')`

func (r *MessageRepository) CreateOffer(ctx context.Context, offer *negotiation.Offer) error {
	const q = `
		INSERT INTO messages (
			id, conversation_key, kind, sender_id, recipient_id, car_ref,
			amount_cents, currency, terms, expires_at, negotiation_status, reply_to,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	var carRef *string
	if !offer.Listing().IsZero() {
		carRef = textOrNil(offer.Listing().String())
	}

	_, err := r.db.Exec(ctx, q,
		offer.ID(), offer.ConversationKey(), string(offer.Kind()),
		offer.SenderID(), offer.RecipientID(), carRef,
		offer.AmountCents(), offer.Currency(), textOrNil(offer.Terms()),
		offer.ExpiresAt(), offer.Status().String(), offer.ReplyTo(),
		offer.CreatedAt(), offer.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create offer", err)
	}
	return nil
}

func (r *MessageRepository) FindOfferForUpdate(ctx context.Context, id uuid.UUID) (*negotiation.Offer, error) {
	const q = `SELECT` + offerColumns + ` FROM messages WHERE id = $1 AND ` + offerKindFilter + ` FOR UPDATE`
	return r.scanOffer(r.db.QueryRow(ctx, q, id))
}

func (r *MessageRepository) UpdateNegotiationStatus(ctx context.Context, id uuid.UUID, status negotiation.Status, updatedAt time.Time) error {
	const q = `UPDATE messages SET negotiation_status = $2, updated_at = $3 WHERE id = $1 AND ` + offerKindFilter
	tag, err := r.db.Exec(ctx, q, id, status.String(), updatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update negotiation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

// FindOfferViewsByRecipient is the user's offer inbox, newest first.
func (r *MessageRepository) FindOfferViewsByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*queries.OfferView, error) {
	const q = `SELECT` + offerColumns + `
		FROM messages
		WHERE recipient_id = $1 AND ` + offerKindFilter + `
		ORDER BY created_at DESC`
	return r.queryOfferViews(ctx, q, recipientID)
}

// FindOfferViewsByConversation is the full negotiation history of one
// thread, oldest first.
func (r *MessageRepository) FindOfferViewsByConversation(ctx context.Context, conversationKey string) ([]*queries.OfferView, error) {
	const q = `SELECT` + offerColumns + `
		FROM messages
		WHERE conversation_key = $1 AND ` + offerKindFilter + `
		ORDER BY created_at ASC`
	return r.queryOfferViews(ctx, q, conversationKey)
}

func (r *MessageRepository) queryOfferViews(ctx context.Context, q string, arg any) ([]*queries.OfferView, error) {
	rows, err := r.db.Query(ctx, q, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query offers", err)
	}
	defer rows.Close()

	var out []*queries.OfferView
	for rows.Next() {
		var v queries.OfferView
		if err := rows.Scan(
			&v.ID, &v.ConversationKey, &v.Kind, &v.SenderID, &v.RecipientID, &v.CarRef,
			&v.AmountCents, &v.Currency, &v.Terms, &v.ExpiresAt, &v.Status, &v.ReplyTo,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer view", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read offers", err)
	}
	return out, nil
}

func (r *MessageRepository) scanOffer(row pgx.Row) (*negotiation.Offer, error) {
	var (
		id, senderID, recipientID uuid.UUID
		conversationKey, kind     string
		carRef, terms             *string
		amountCents               int64
		currency, status          string
		expiresAt                 *time.Time
		replyTo                   *uuid.UUID
		createdAt, updatedAt      time.Time
	)
	err := row.Scan(
		&id, &conversationKey, &kind, &senderID, &recipientID, &carRef,
		&amountCents, &currency, &terms, &expiresAt, &status, &replyTo,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan offer", err)
	}

	return negotiation.ReconstructOffer(
		id, conversationKey, senderID, recipientID,
		negotiation.ParseListingRef(derefOr(carRef)),
		negotiation.Kind(kind),
		amountCents, currency, derefOr(terms), expiresAt,
		negotiation.Status(status), replyTo,
		createdAt, updatedAt,
	), nil
}
