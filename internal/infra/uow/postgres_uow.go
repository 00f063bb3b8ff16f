package uow

import (
	"context"
	"errors"

	"carmarket-engine/internal/infra/repository"
	"carmarket-engine/internal/pkg/errs"
	"carmarket-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		// Rollback after commit is a no-op signalled by ErrTxClosed.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if err := fn(ctx, &pgTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Wrap(err, "failed to commit transaction")
	}
	return nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Reservations() shared.ReservationWriter {
	return repository.NewReservationRepository(t.tx)
}

func (t *pgTx) Messages() shared.MessageWriter {
	return repository.NewMessageRepository(t.tx)
}
