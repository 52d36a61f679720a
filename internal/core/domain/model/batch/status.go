package batch

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the reconciliation state of a batch.
type Status int

const (
	Unknown Status = iota
	Pending
	Checking
	Completed
	Partial
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Checking:  "checking",
		Completed: "completed",
		Partial:   "partial",
		Cancelled: "cancelled",
	}
}

// transitions is the explicit allow-list managers may request.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:  {Checking, Cancelled},
		Checking: {Completed, Partial},
		Partial:  {Completed},
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid batch status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid batch status", s))
	}
	return nil
}

// CanTransitionTo reports whether the allow-list has an edge s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
