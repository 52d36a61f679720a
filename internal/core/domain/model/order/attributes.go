package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// CreatorType records who opened the order. It selects the edit rule table
// and the initial status.
type CreatorType int

const (
	CreatorUnknown CreatorType = iota
	CreatorCustomer
	CreatorDepot
)

func (c CreatorType) String() string {
	switch c {
	case CreatorCustomer:
		return "customer"
	case CreatorDepot:
		return "depot"
	default:
		return "unknown"
	}
}

func (c CreatorType) Validate() error {
	if c != CreatorCustomer && c != CreatorDepot {
		return errs.NewValueIsInvalidErrorWithCause("creator type", fmt.Errorf("%d is not a valid creator type", c))
	}
	return nil
}

// Payer is the party owing the shipping fee.
type Payer int

const (
	PayerUnknown Payer = iota
	PayerCustomer
	PayerShop
)

func (p Payer) String() string {
	switch p {
	case PayerCustomer:
		return "customer"
	case PayerShop:
		return "shop"
	default:
		return "unknown"
	}
}

func (p Payer) Validate() error {
	if p != PayerCustomer && p != PayerShop {
		return errs.NewValueIsInvalidErrorWithCause("payer", fmt.Errorf("%d is not a valid payer", p))
	}
	return nil
}

// ParsePayer accepts "customer" or "shop".
func ParsePayer(s string) (Payer, error) {
	switch s {
	case "customer":
		return PayerCustomer, nil
	case "shop":
		return PayerShop, nil
	default:
		return PayerUnknown, errs.NewValueIsInvalidErrorWithCause("payer", fmt.Errorf("%q is not a valid payer", s))
	}
}

// PaymentStatus tracks the shipping fee.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentUnpaid
	PaymentPaid
	PaymentRefunded
)

func (p PaymentStatus) String() string {
	switch p {
	case PaymentUnpaid:
		return "unpaid"
	case PaymentPaid:
		return "paid"
	case PaymentRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}

// IsSettled reports whether the fee was already paid or refunded.
func (p PaymentStatus) IsSettled() bool {
	return p == PaymentPaid || p == PaymentRefunded
}

// CODStatus tracks the cash-on-delivery expectation. It is only ever
// non-None while the COD amount is positive.
type CODStatus int

const (
	CODUnknown CODStatus = iota
	CODNone
	CODPending
	CODCollected
)

func (c CODStatus) String() string {
	switch c {
	case CODNone:
		return "none"
	case CODPending:
		return "pending"
	case CODCollected:
		return "collected"
	default:
		return "unknown"
	}
}

// Incident is the recorded reason for a failed last-mile attempt.
type Incident int

const (
	IncidentNone Incident = iota
	IncidentRecipientUnavailable
	IncidentRecipientRefused
)

func (i Incident) String() string {
	switch i {
	case IncidentRecipientUnavailable:
		return "recipient_unavailable"
	case IncidentRecipientRefused:
		return "recipient_refused"
	default:
		return "none"
	}
}

// ParseIncident accepts the names returned by Incident.String, excluding "none".
func ParseIncident(s string) (Incident, error) {
	switch s {
	case "recipient_unavailable":
		return IncidentRecipientUnavailable, nil
	case "recipient_refused":
		return IncidentRecipientRefused, nil
	default:
		return IncidentNone, errs.NewValueIsInvalidErrorWithCause("incident", fmt.Errorf("%q is not a valid incident", s))
	}
}
