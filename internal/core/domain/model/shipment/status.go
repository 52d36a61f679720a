package shipment

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
//
//	Pending -> InTransit -> Completed | Cancelled
//	Pending -> Cancelled
type Status int

const (
	Unknown Status = iota
	Pending
	InTransit
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InTransit: "in_transit",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {InTransit, Cancelled},
		InTransit: {Completed, Cancelled},
	}
}

// ParseStatus converts a persisted or wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid shipment status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports Completed and Cancelled. Links of a terminal shipment
// are read-only history.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Type distinguishes depot-to-depot transfers from last-mile runs.
type Type int

const (
	TypeUnknown Type = iota
	TypeTransfer
	TypeDelivery
)

func (t Type) String() string {
	switch t {
	case TypeTransfer:
		return "transfer"
	case TypeDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// ParseType accepts "transfer" or "delivery".
func ParseType(s string) (Type, error) {
	switch s {
	case "transfer":
		return TypeTransfer, nil
	case "delivery":
		return TypeDelivery, nil
	default:
		return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid shipment type", s))
	}
}
