// Package shipment provides the Shipment aggregate: one trip that carries a
// set of orders from an office to a single destination office.
//
// Pickup eligibility is a static table keyed by the employee's role and the
// departure office's relation to the order (origin or destination). The
// aggregate only tracks its own status and join records; moving the linked
// orders is done by the command handlers inside the same transaction.
package shipment
