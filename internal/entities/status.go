package entities

// OrderStatus is the lifecycle state of an order. The set of values is
// closed: anything read from outside (request body, database row) must pass
// Valid before it is used.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusAssigned  OrderStatus = "Assigned"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// transitions is the explicit transition table. Assignment is the only coded
// transition; Delivered and Cancelled exist as stored values but have no
// inbound edge here yet.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusAssigned},
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the transition table allows s -> to.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionSources lists every status the transition table allows to move
// into the given status from. State guards in queries must be built from
// this, not from hard-coded status literals.
func TransitionSources(to OrderStatus) []OrderStatus {
	var sources []OrderStatus
	for from, targets := range transitions {
		for _, t := range targets {
			if t == to {
				sources = append(sources, from)
			}
		}
	}
	return sources
}
