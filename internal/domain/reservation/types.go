package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusDeclined  Status = "declined"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusDeclined, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTransitionTarget reports whether s is a status a caller may move a
// reservation into. Pending is the creation state only.
func (s Status) IsTransitionTarget() bool {
	switch s {
	case StatusConfirmed, StatusDeclined, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// BlocksSlot reports whether a reservation in this status holds its date
// range against new bookings.
func (s Status) BlocksSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}
