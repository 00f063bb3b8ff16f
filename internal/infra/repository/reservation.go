package repository

import (
	"context"
	"errors"
	"time"

	"carmarket-engine/internal/domain/reservation"
	"carmarket-engine/internal/infra"
	"carmarket-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReservationRepository reads through the pool; writes go through the DBTX
// handed to it, which the unit of work binds to an open transaction.
type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// WithTx returns a copy bound to tx for use inside a unit of work.
func (r *ReservationRepository) WithTx(tx DBTX) *ReservationRepository {
	return &ReservationRepository{db: tx}
}

const reservationColumns = `
	id, car_id, requester_id, owner_id, start_at, end_at, status,
	total_cents, currency, contact_name, contact_email, contact_phone, note,
	created_at, updated_at`

// Create inserts the reservation. The table's range-exclusion constraint is
// the commit-time arbiter for the overlap race: the losing writer comes back
// as KindConflict, which callers surface exactly like a failed pre-check.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	const q = `
		INSERT INTO reservations (
			id, car_id, requester_id, owner_id, start_at, end_at, status,
			total_cents, currency, contact_name, contact_email, contact_phone, note,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	contact := res.Contact()
	_, err := r.db.Exec(ctx, q,
		res.ID(), res.CarID(), res.RequesterID(), res.OwnerID(),
		res.Stay().Start(), res.Stay().End(), res.Status().String(),
		res.Total().Cents(), res.Currency(),
		textOrNil(contact.Name), textOrNil(contact.Email), textOrNil(contact.Phone),
		textOrNil(res.Note()),
		res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	const q = `SELECT` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	return r.scanEntity(r.db.QueryRow(ctx, q, id))
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status, updatedAt time.Time) error {
	const q = `UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id, status.String(), updatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

// FindOverlapping answers the conflict index: every slot-blocking reservation
// whose half-open interval intersects [start, end).
func (r *ReservationRepository) FindOverlapping(ctx context.Context, carID uuid.UUID, start, end time.Time) ([]queries.ConflictingStay, error) {
	const q = `
		SELECT start_at, end_at, status
		FROM reservations
		WHERE car_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_at < $3
		  AND end_at > $2
		ORDER BY start_at`

	rows, err := r.db.Query(ctx, q, carID, start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping reservations", err)
	}
	defer rows.Close()

	var out []queries.ConflictingStay
	for rows.Next() {
		var c queries.ConflictingStay
		if err := rows.Scan(&c.StartAt, &c.EndAt, &c.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overlapping reservation", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overlapping reservations", err)
	}
	return out, nil
}

func (r *ReservationRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	const q = `SELECT` + reservationColumns + ` FROM reservations WHERE id = $1`

	var v queries.ReservationView
	err := r.db.QueryRow(ctx, q, id).Scan(
		&v.ID, &v.CarID, &v.RequesterID, &v.OwnerID, &v.StartAt, &v.EndAt, &v.Status,
		&v.TotalCents, &v.Currency, &v.ContactName, &v.ContactEmail, &v.ContactPhone, &v.Note,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return &v, nil
}

// FindViewsByParty lists bookings the user is part of, from either side.
func (r *ReservationRepository) FindViewsByParty(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationListItem, error) {
	const q = `
		SELECT id, car_id, start_at, end_at, status, total_cents, currency, created_at
		FROM reservations
		WHERE requester_id = $1 OR owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservations by party", err)
	}
	defer rows.Close()

	var out []*queries.ReservationListItem
	for rows.Next() {
		var item queries.ReservationListItem
		if err := rows.Scan(&item.ID, &item.CarID, &item.StartAt, &item.EndAt,
			&item.Status, &item.TotalCents, &item.Currency, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations by party", err)
	}
	return out, nil
}

func (r *ReservationRepository) scanEntity(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, carID, requesterID, ownerID        uuid.UUID
		startAt, endAt, createdAt, updatedAt   time.Time
		status, currency                       string
		totalCents                             int64
		contactName, contactEmail, contactPhone, note *string
	)
	err := row.Scan(
		&id, &carID, &requesterID, &ownerID, &startAt, &endAt, &status,
		&totalCents, &currency, &contactName, &contactEmail, &contactPhone, &note,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan reservation", err)
	}

	stay, err := reservation.NewStayRange(startAt, endAt)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid stay range", err)
	}

	return reservation.ReconstructReservation(
		id, carID, requesterID, ownerID,
		stay,
		reservation.Status(status),
		reservation.NewMoney(totalCents),
		currency,
		reservation.ContactInfo{
			Name:  derefOr(contactName),
			Email: derefOr(contactEmail),
			Phone: derefOr(contactPhone),
		},
		derefOr(note),
		createdAt, updatedAt,
	), nil
}
