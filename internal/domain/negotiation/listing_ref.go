package negotiation

import (
	"github.com/google/uuid"
)

// ListingRef is the car a negotiation is about. Refs in the authoritative
// catalog's id format must resolve there; anything else is an opaque external
// id the engine carries but never validates. The two provenances are kept as
// an explicit union so callers branch on it rather than guessing from shape.
type ListingRef struct {
	catalogID uuid.UUID
	opaque    string
}

// ParseListingRef classifies raw by id shape: catalog ids are UUIDs, all
// other non-empty strings are opaque external refs. An empty raw yields the
// zero ref (negotiation not scoped to a car).
func ParseListingRef(raw string) ListingRef {
	if raw == "" {
		return ListingRef{}
	}
	if id, err := uuid.Parse(raw); err == nil {
		return ListingRef{catalogID: id}
	}
	return ListingRef{opaque: raw}
}

func CatalogRef(id uuid.UUID) ListingRef {
	return ListingRef{catalogID: id}
}

func (r ListingRef) IsZero() bool {
	return r.catalogID == uuid.Nil && r.opaque == ""
}

func (r ListingRef) IsCatalog() bool {
	return r.catalogID != uuid.Nil
}

func (r ListingRef) CatalogID() uuid.UUID {
	return r.catalogID
}

func (r ListingRef) String() string {
	if r.IsCatalog() {
		return r.catalogID.String()
	}
	return r.opaque
}
