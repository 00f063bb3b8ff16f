//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"carmarket-engine/internal/infra"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErrClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{name: "no rows maps to not found", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{
			name: "exclusion violation maps to conflict",
			err:  &pgconn.PgError{Code: pgerrcode.ExclusionViolation},
			want: infra.KindConflict,
		},
		{
			name: "unique violation maps to conflict",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			want: infra.KindConflict,
		},
		{
			name: "foreign key violation maps to its own kind",
			err:  &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			want: infra.KindForeignKeyViolated,
		},
		{name: "anything else is a db failure", err: errors.New("connection reset"), want: infra.KindDBFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := infra.WrapRepoErr("query failed", tc.err)
			assert.True(t, infra.IsKind(wrapped, tc.want))
		})
	}
}

func TestWrapRepoErrExplicitKind(t *testing.T) {
	wrapped := infra.WrapRepoErr("gone", errors.New("whatever"), infra.KindNotFound)
	assert.True(t, infra.IsKind(wrapped, infra.KindNotFound))
	assert.False(t, infra.IsKind(wrapped, infra.KindDBFailure))
}

func TestIsKindOnForeignError(t *testing.T) {
	assert.False(t, infra.IsKind(errors.New("plain"), infra.KindNotFound))
	assert.False(t, infra.IsKind(nil, infra.KindNotFound))
}

func TestRepositoryErrorUnwrap(t *testing.T) {
	inner := errors.New("inner failure")
	wrapped := infra.WrapRepoErr("outer", inner)
	assert.ErrorIs(t, wrapped, inner)
	assert.Contains(t, wrapped.Error(), "outer")
}
