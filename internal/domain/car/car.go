package car

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidDailyRate = errors.New("daily rate must be positive")
	ErrMissingOwner     = errors.New("car owner is required")
)

// Car is the bookable listing as the engine sees it: the catalog component
// owns the full record, the engine only needs owner and pricing.
type Car struct {
	id             uuid.UUID
	ownerID        uuid.UUID
	dailyRateCents int64
	currency       string
}

func NewCar(id, ownerID uuid.UUID, dailyRateCents int64, currency string) (*Car, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if dailyRateCents <= 0 {
		return nil, ErrInvalidDailyRate
	}
	if currency == "" {
		currency = "USD"
	}
	return &Car{
		id:             id,
		ownerID:        ownerID,
		dailyRateCents: dailyRateCents,
		currency:       currency,
	}, nil
}

func (c *Car) ID() uuid.UUID         { return c.id }
func (c *Car) OwnerID() uuid.UUID    { return c.ownerID }
func (c *Car) DailyRateCents() int64 { return c.dailyRateCents }
func (c *Car) Currency() string      { return c.currency }
