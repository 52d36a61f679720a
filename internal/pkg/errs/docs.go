// Package errs provides the error taxonomy shared by the parcel, shipment and
// cash reconciliation code.
//
// Two families live here:
//   - value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError) raised while constructing or loading aggregates
//   - workflow errors (InvalidTransitionError, FieldLockedError, UnauthorizedError,
//     InconsistentStateError, ConcurrentUpdateError and the plain sentinels such as
//     ErrNoEligibleOrders) raised when a valid request conflicts with current state
//
// Every struct unwraps to its sentinel so callers classify failures with errors.Is
// and never by inspecting messages.
package errs
