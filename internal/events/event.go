package events

import "time"

// Event names published by the engine.
const (
	ReservationCreated = "reservation.created"
	ReservationUpdated = "reservation.updated"
	OfferCreated       = "offer.created"
	OfferUpdated       = "offer.updated"
)

// Event is a domain state change headed for room fan-out. Payload must be
// JSON-marshalable; it is serialized once on the dispatcher goroutine, off the
// request path.
type Event struct {
	Name       string
	Payload    any
	OccurredAt time.Time
}
