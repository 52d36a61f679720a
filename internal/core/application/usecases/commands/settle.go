package commands

import (
	"context"

	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// settleDelivered persists the records owed for a delivered order.
func settleDelivered(ctx context.Context, records ports.SubmissionRepository, settlement services.Settlement, o *order.Order) error {
	existing, err := records.ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	created, err := settlement.OnDelivered(o, existing)
	if err != nil {
		return err
	}
	return addRecords(ctx, records, created...)
}

// settleReturned applies the returned-parcel side effects to o and persists
// the refund record when cash had been collected.
func settleReturned(ctx context.Context, records ports.SubmissionRepository, settlement services.Settlement, o *order.Order) error {
	existing, err := records.ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	refund, err := settlement.OnReturned(o, existing)
	if err != nil {
		return err
	}
	if refund == nil {
		return nil
	}
	return addRecords(ctx, records, refund)
}

func addRecords(ctx context.Context, repo ports.SubmissionRepository, records ...*collection.Submission) error {
	for _, r := range records {
		if err := repo.Add(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
