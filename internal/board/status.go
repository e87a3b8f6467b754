package board

import "strings"

// Status is one stage of the order lifecycle as the kitchen sees it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDispatch  Status = "dispatch"
	StatusRejected  Status = "rejected"
)

// Tabs lists the statuses the board partitions orders by, in display order.
// Terminal statuses have no tab: dispatched and rejected orders leave the
// active set.
func Tabs() []Status {
	return []Status{StatusPending, StatusPreparing, StatusReady}
}

// ParseStatus maps a wire status onto the enumeration. Unknown or empty
// input resolves to pending, the safe default for a freshly placed order.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending
	case StatusPreparing:
		return StatusPreparing
	case StatusReady:
		return StatusReady
	case StatusDispatch:
		return StatusDispatch
	case StatusRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

// IsTerminal reports whether an order with this status leaves the visible set.
func (s Status) IsTerminal() bool {
	return s == StatusDispatch || s == StatusRejected
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusPreparing, StatusRejected},
	StatusPreparing: {StatusReady, StatusRejected},
	StatusReady:     {StatusDispatch},
}

// CanTransition reports whether staff may move an order from one status to
// the next. The backend remains the final authority; this only stops
// requests that could never succeed.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
