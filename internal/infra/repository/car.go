package repository

import (
	"context"
	"errors"

	"carmarket-engine/internal/domain/car"
	"carmarket-engine/internal/infra"
	"carmarket-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CarRepository is the read-only view onto the catalog component's table.
type CarRepository struct {
	db DBTX
}

func NewCarRepository(db DBTX) *CarRepository {
	return &CarRepository{db: db}
}

func (r *CarRepository) FindByID(ctx context.Context, id uuid.UUID) (*car.Car, error) {
	v, err := r.FindViewByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entity, err := car.NewCar(v.ID, v.OwnerID, v.DailyRateCents, v.Currency)
	if err != nil {
		return nil, infra.WrapRepoErr("stored car is invalid", err)
	}
	return entity, nil
}

func (r *CarRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.CarView, error) {
	const q = `SELECT id, owner_id, daily_rate_cents, currency FROM cars WHERE id = $1`

	var v queries.CarView
	err := r.db.QueryRow(ctx, q, id).Scan(&v.ID, &v.OwnerID, &v.DailyRateCents, &v.Currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("car not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find car by ID", err)
	}
	return &v, nil
}
