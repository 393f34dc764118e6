package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the kitchen-to-door workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> OutForDelivery ──> Delivered
//	   │            │             │               │
//	   └────────────┴─────────────┴───────────────┴──────────> Cancelled
//
// Delivered and Cancelled are terminal: the only accepted request from a
// terminal state is the same state again, which is a no-op.
//
// The numeric values follow the lifecycle, so ordering by Status orders by
// progress. They are persisted; do not reorder.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every new order.
	Pending

	// Confirmed means the restaurant accepted the order.
	Confirmed

	// Preparing means the kitchen is working on the order.
	Preparing

	// OutForDelivery means the order left the restaurant.
	OutForDelivery

	// Delivered is terminal; entering it stamps the actual delivery time.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

var statusNames = map[Status]string{
	Pending:        "PENDING",
	Confirmed:      "CONFIRMED",
	Preparing:      "PREPARING",
	OutForDelivery: "OUT_FOR_DELIVERY",
	Delivered:      "DELIVERED",
	Cancelled:      "CANCELLED",
}

var allowedTransitions = map[Status][]Status{
	Pending:        {Confirmed, Cancelled},
	Confirmed:      {Preparing, Cancelled},
	Preparing:      {OutForDelivery, Cancelled},
	OutForDelivery: {Delivered, Cancelled},
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, Preparing, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus converts a wire name such as "OUT_FOR_DELIVERY" into a Status.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the value is one of the six lifecycle states.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateTransition checks whether moving from s to next is allowed.
//
// Returns nil for a permitted edge and for the idempotent terminal case
// (Delivered -> Delivered, Cancelled -> Cancelled). Every other pair,
// including self-transitions of non-terminal states, skips and backward
// moves, yields an *errs.InvalidTransitionError.
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(s.String(), next.String(), err)
	}

	if s.IsTerminal() {
		if s == next {
			return nil
		}
		return errs.NewInvalidTransitionErrorWithCause(
			s.String(), next.String(), fmt.Errorf("%s is a terminal status", s))
	}

	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return nil
		}
	}

	return errs.NewInvalidTransitionError(s.String(), next.String())
}
