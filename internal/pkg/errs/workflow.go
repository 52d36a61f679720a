package errs

import (
	"errors"
	"fmt"
)

// Workflow sentinels. Command handlers return these (or a struct wrapping them)
// when a request is well formed but the current state of the parcel, shipment
// or cash ledger forbids it.
var (
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrFieldLocked        = errors.New("field is locked")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNoEligibleOrders   = errors.New("no eligible orders")
	ErrNoDestination      = errors.New("no destination office")
	ErrEmptySelection     = errors.New("empty selection")
	ErrNoEligibleRecords  = errors.New("no eligible records")
	ErrOrderNotAddable    = errors.New("order is not addable")
	ErrInconsistentState  = errors.New("inconsistent state")
	ErrAlreadyCollected   = errors.New("already collected")
	ErrVehicleUnavailable = errors.New("vehicle is unavailable")
	ErrConcurrentUpdate   = errors.New("concurrent update")
)

// InvalidTransitionError is returned when a state machine has no edge from the
// current status to the requested one.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func NewInvalidTransitionError(entity string, from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity: entity,
		From:   from.String(),
		To:     to.String(),
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// FieldLockedError is returned when an edit touches a field the rule table
// freezes in the order's current status.
type FieldLockedError struct {
	Field  string
	Status string
}

func NewFieldLockedError(field string, status fmt.Stringer) *FieldLockedError {
	return &FieldLockedError{Field: field, Status: status.String()}
}

func (e *FieldLockedError) Error() string {
	return fmt.Sprintf("%s: %s cannot be edited in status %s", ErrFieldLocked, e.Field, e.Status)
}

func (e *FieldLockedError) Unwrap() error {
	return ErrFieldLocked
}

// UnauthorizedError is returned when the acting identity may not perform the action.
type UnauthorizedError struct {
	Action  string
	ActorID string
}

func NewUnauthorizedError(action string, actorID fmt.Stringer) *UnauthorizedError {
	return &UnauthorizedError{Action: action, ActorID: actorID.String()}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s", ErrUnauthorized, e.ActorID, e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InconsistentStateError is returned when related aggregates disagree, for
// example a shipment holding an order that is not in the expected status.
type InconsistentStateError struct {
	Entity string
	ID     string
	Reason string
}

func NewInconsistentStateError(entity string, id fmt.Stringer, reason string) *InconsistentStateError {
	return &InconsistentStateError{Entity: entity, ID: id.String(), Reason: reason}
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("%s: %s %s %s", ErrInconsistentState, e.Entity, e.ID, sanitize(e.Reason))
}

func (e *InconsistentStateError) Unwrap() error {
	return ErrInconsistentState
}

// ConcurrentUpdateError is returned when an optimistic version check matched no row.
type ConcurrentUpdateError struct {
	Entity  string
	ID      string
	Version int
}

func NewConcurrentUpdateError(entity string, id fmt.Stringer, version int) *ConcurrentUpdateError {
	return &ConcurrentUpdateError{Entity: entity, ID: id.String(), Version: version}
}

func (e *ConcurrentUpdateError) Error() string {
	return fmt.Sprintf("%s: %s %s changed after version %d was read", ErrConcurrentUpdate, e.Entity, e.ID, e.Version)
}

func (e *ConcurrentUpdateError) Unwrap() error {
	return ErrConcurrentUpdate
}
