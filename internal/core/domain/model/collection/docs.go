// Package collection provides the collection record (payment submission):
// one accounted cash movement tied to an order and the courier who handled it.
//
// Fee and COD records start Pending, move to InBatch when the courier hands
// the cash over, and are settled Matched or Mismatched by batch
// reconciliation. A Mismatched record is resolved by Adjust. Refund records
// are negative, born Adjusted, and never enter a batch.
package collection
