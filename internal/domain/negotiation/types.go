package negotiation

// Kind distinguishes an opening offer from a counter in the same thread.
type Kind string

const (
	KindOffer        Kind = "offer"
	KindCounterOffer Kind = "counter_offer"
)

func (k Kind) IsValid() bool {
	return k == KindOffer || k == KindCounterOffer
}

// Status is the negotiation lifecycle of a single offer, independent of any
// outer message delivery state. Every status except pending is terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
	// StatusExpired is reachable only by a time-based sweep outside this
	// engine; no caller-triggered transition produces it.
	StatusExpired Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusWithdrawn, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && s != StatusPending
}

// IsResolutionTarget reports whether callers may resolve an offer into s.
func (s Status) IsResolutionTarget() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}
