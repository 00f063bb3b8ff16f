//go:build unit || e2e

package builder

import (
	"carmarket-engine/internal/domain/car"
	"carmarket-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type CarBuilder struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	DailyRateCents int64
	Currency       string
}

func NewCarBuilder() *CarBuilder {
	return &CarBuilder{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		DailyRateCents: 10000,
		Currency:       "USD",
	}
}

func (b *CarBuilder) With(mutate func(*CarBuilder)) *CarBuilder {
	mutate(b)
	return b
}

func (b *CarBuilder) BuildDomain() (*car.Car, error) {
	return car.NewCar(b.ID, b.OwnerID, b.DailyRateCents, b.Currency)
}

func (b *CarBuilder) BuildView() *queries.CarView {
	return &queries.CarView{
		ID:             b.ID,
		OwnerID:        b.OwnerID,
		DailyRateCents: b.DailyRateCents,
		Currency:       b.Currency,
	}
}
