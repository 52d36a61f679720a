// Package order provides the Order aggregate: the parcel's identity, its
// customer-facing attributes, fee and COD expectations, and the status machine
// every other component drives.
//
// The package includes:
//   - Order: the aggregate root, with one method per lifecycle operation
//   - Status: the state enum and its static transition table
//   - Rule tables: field-level edit permissions, one table per
//     (editor kind x order origin)
//   - HistoryEntry: the audit record appended on every status change
//
// Key business rules:
//   - Cancellation is possible only from draft, pending or confirmed
//   - Customer orders start in draft, depot orders start in pending
//   - A failed delivery re-enters delivering only when the caller's policy allows it
//   - COD status may be non-none only while the COD amount is positive
//
// Settlement effects of delivery and return (collection records, refunds)
// live in the services package because they span the order and the ledger.
package order
