package order

import "github.com/KevinDarioIguaran/LCLGSC/models"

// transitions is the order state machine. Every state reachable from
// pending is terminal; there is no path back.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending: {
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded,
	},
	models.OrderStatusCompleted: {},
	models.OrderStatusCancelled: {},
	models.OrderStatusRefunded:  {},
}

// CanTransition reports whether an order may move from one status to
// another. Unknown statuses never transition.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status models.OrderStatus) bool {
	next, ok := transitions[status]
	return ok && len(next) == 0
}
