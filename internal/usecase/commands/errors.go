package commands

import "carmarket-engine/internal/pkg/errs"

var (
	ErrInvalidStay         = errs.New("invalid stay range")
	ErrCarNotFound         = errs.New("car not found")
	ErrSlotUnavailable     = errs.New("requested dates are unavailable")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrInvalidStatus       = errs.New("invalid status")
	ErrForbidden           = errs.New("actor is not permitted")
	ErrInvalidOffer        = errs.New("invalid offer")
	ErrOfferNotFound       = errs.New("offer not found")
	ErrOfferFinalized      = errs.New("offer already finalized")
	ErrDatabaseOperation   = errs.New("database operation failed")
)
