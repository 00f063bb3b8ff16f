package events

import "github.com/google/uuid"

// Room ids are derived fan-out addresses, never persisted entities.

func ResourceRoom(carRef string) string {
	return "resource:" + carRef
}

func ParticipantRoom(userID uuid.UUID) string {
	return "participant:" + userID.String()
}

func ConversationRoom(key string) string {
	return "conversation:" + key
}

// Rooms collapses ids into a distinct set, dropping empties, preserving
// first-seen order so per-room publish order follows dispatch order.
func Rooms(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
