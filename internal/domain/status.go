package domain

// List of possible order statuses
const (
	StatusNew        OrderStatus = "new"
	StatusAssigned   OrderStatus = "assigned"
	StatusInProgress OrderStatus = "in_progress"
	StatusDelivered  OrderStatus = "delivered"
	StatusFinalized  OrderStatus = "finalized"
	StatusDismissed  OrderStatus = "dismissed"
)

// List of allowed statuses
var allowedStatuses = [...]OrderStatus{
	StatusNew, StatusAssigned, StatusInProgress,
	StatusDelivered, StatusFinalized, StatusDismissed,
}

// transitions is the set of legal lifecycle moves. Transitions are monotonic:
// no entry ever points back at an earlier state.
var transitions = map[OrderStatus][]OrderStatus{
	StatusNew:        {StatusAssigned, StatusDismissed},
	StatusAssigned:   {StatusInProgress},
	StatusInProgress: {StatusDelivered, StatusDismissed},
	StatusDelivered:  {StatusFinalized},
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further lifecycle transition is possible.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// Archivable reports whether an order in this status may be archived.
// Archival is orthogonal to the status itself and applies once the order
// stopped moving: delivered, finalized or dismissed.
func (s OrderStatus) Archivable() bool {
	switch s {
	case StatusDelivered, StatusFinalized, StatusDismissed:
		return true
	default:
		return false
	}
}

// CanTransition reports whether moving from s to next is a legal lifecycle move.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, v := range transitions[s] {
		if v == next {
			return true
		}
	}
	return false
}
