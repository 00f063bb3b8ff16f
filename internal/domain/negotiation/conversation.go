package negotiation

import (
	"strings"

	"github.com/google/uuid"
)

// ConversationKey derives the thread id for a two-party exchange. The
// participant pair is sorted so both sides resolve to the same key no matter
// who initiates, and the listing ref is appended when the exchange is scoped
// to a car. The key is never persisted as its own entity.
func ConversationKey(a, b uuid.UUID, listing ListingRef) string {
	ids := []string{a.String(), b.String()}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}

	key := strings.Join(ids, "_")
	if !listing.IsZero() {
		key += "_" + listing.String()
	}
	return key
}
