package events

import "context"

// RoomPublisher is the transport boundary: deliver one serialized event to
// every current subscriber of a named room. Implementations must not retry or
// persist; delivery is best-effort by contract.
type RoomPublisher interface {
	PublishToRoom(ctx context.Context, roomID, eventName string, payload []byte) error
}

// NopPublisher drops everything. Used when the realtime transport is
// disabled; callers must behave identically with or without subscribers.
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (*NopPublisher) PublishToRoom(context.Context, string, string, []byte) error {
	return nil
}
