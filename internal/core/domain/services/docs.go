// Package services provides domain services: rules that span more than one
// aggregate and so belong to none of them.
//
// The package includes:
//   - ShipmentPlanner: picks the orders a new shipment takes and its destination
//   - Settlement: collection records and order flags on delivery and return
//   - CashApportioner: splits a handed-over total across collection records
//
// Services are pure: they mutate the aggregates passed in and return new
// ones, and leave persistence to the command handlers.
package services
