// Package kernel holds the value objects shared by every aggregate of the parcel
// network: identifiers, money, contacts and the acting identity.
//
//   - UUID wraps google/uuid and rejects the nil identifier
//   - Money is an exact decimal amount (shopspring/decimal) with sign semantics:
//     positive owed to the company, negative refunded
//   - Contact and Address describe senders and recipients; Address.Region feeds tariffs
//   - Actor carries caller identity, role and office affiliation into every command
package kernel
