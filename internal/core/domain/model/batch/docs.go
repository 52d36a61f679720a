// Package batch provides the settlement batch: a set of one courier's
// collection records reconciled together.
//
// A total mismatch is not an error. Complete reports it through
// Outcome.AmountMismatch and leaves the batch Partial until every mismatched
// record has been adjusted.
package batch
