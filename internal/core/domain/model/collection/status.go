package collection

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the reconciliation state of a collection record.
//
//	Pending -> InBatch -> Matched | Mismatched -> Adjusted
//
// Refund records are born Adjusted.
type Status int

const (
	Unknown Status = iota
	Pending
	InBatch
	Matched
	Mismatched
	Adjusted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		InBatch:    "in_batch",
		Matched:    "matched",
		Mismatched: "mismatched",
		Adjusted:   "adjusted",
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
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid record status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid record status", s))
	}
	return nil
}

// IsOpen reports statuses in which cash is collected but not yet reconciled.
func (s Status) IsOpen() bool {
	return s == Pending || s == InBatch
}

// Kind is what the cash was collected for.
type Kind int

const (
	KindUnknown Kind = iota
	KindFee
	KindCOD
	KindRefund
)

func (k Kind) String() string {
	switch k {
	case KindFee:
		return "fee"
	case KindCOD:
		return "cod"
	case KindRefund:
		return "refund"
	default:
		return "unknown"
	}
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "fee":
		return KindFee, nil
	case "cod":
		return KindCOD, nil
	case "refund":
		return KindRefund, nil
	default:
		return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid record kind", s))
	}
}
