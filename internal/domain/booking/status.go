package booking

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	// StatusInquiry is the initial state. An inquiry is a soft lead and does
	// not hold the schedule slot.
	StatusInquiry BookingStatus = "INQUIRY"
	// StatusTentative holds the slot pending confirmation
	StatusTentative BookingStatus = "TENTATIVE"
	// StatusConfirmed is a committed reservation
	StatusConfirmed BookingStatus = "CONFIRMED"
	// StatusExecuted means the event is underway or has taken place
	StatusExecuted BookingStatus = "EXECUTED"
	// StatusCompleted is terminal; reachable only from EXECUTED
	StatusCompleted BookingStatus = "COMPLETED"
	// StatusCancelled is terminal; reachable from every non-terminal state
	StatusCancelled BookingStatus = "CANCELLED"
	// StatusConflict marks a booking that collides with another on the same
	// venue. Resolving it always requires explicit staff action.
	StatusConflict BookingStatus = "CONFLICT"
	// StatusWaitlist queues a booking behind an occupied slot
	StatusWaitlist BookingStatus = "WAITLIST"
)

// IsValid checks if the status is a known BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusInquiry, StatusTentative, StatusConfirmed, StatusExecuted,
		StatusCompleted, StatusCancelled, StatusConflict, StatusWaitlist:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OccupiesSlot reports whether a booking in this status blocks the venue's
// schedule. CANCELLED bookings are gone and an INQUIRY is deliberately not a
// hold, so neither participates in conflict detection.
func (s BookingStatus) OccupiesSlot() bool {
	return s != StatusCancelled && s != StatusInquiry
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are role-gated by the caller's permission set; this table only
// encodes what the lifecycle itself allows.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case StatusInquiry:
		return target == StatusTentative || target == StatusConfirmed || target == StatusCancelled
	case StatusTentative:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusExecuted || target == StatusCancelled
	case StatusExecuted:
		return target == StatusCompleted
	case StatusConflict:
		return target == StatusTentative || target == StatusCancelled
	case StatusWaitlist:
		return target == StatusTentative || target == StatusConfirmed || target == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// ActiveStatuses returns the statuses that occupy a venue slot, in the order
// used by conflict queries.
func ActiveStatuses() []BookingStatus {
	return []BookingStatus{
		StatusTentative,
		StatusConfirmed,
		StatusExecuted,
		StatusCompleted,
		StatusConflict,
		StatusWaitlist,
	}
}
