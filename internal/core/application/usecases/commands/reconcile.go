package commands

import (
	"context"

	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// completeBatch evaluates a locked batch against its locked members and
// persists the outcome. A batch that was already completed is left alone.
func completeBatch(ctx context.Context, uow BatchUoW, reconcilerID kernel.UUID, b *batch.Batch) (batch.Outcome, error) {
	records := uow.SubmissionRepository()
	members, err := records.ListByBatch(ctx, b.ID())
	if err != nil {
		return batch.Outcome{}, err
	}

	outcome, err := b.Complete(reconcilerID, members)
	if err != nil || outcome.Unchanged {
		return outcome, err
	}

	for _, m := range members {
		if err = records.Update(ctx, m); err != nil {
			return batch.Outcome{}, err
		}
	}

	if outcome.Status == batch.Completed {
		if err = markCODCollected(ctx, uow.OrderRepository(), members); err != nil {
			return batch.Outcome{}, err
		}
	}

	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return batch.Outcome{}, err
	}
	return outcome, nil
}

func markCODCollected(ctx context.Context, repo ports.OrderRepository, members []*collection.Submission) error {
	ids := make([]kernel.UUID, 0, len(members))
	for _, m := range members {
		if m.Kind() == collection.KindCOD {
			ids = append(ids, m.OrderID())
		}
	}
	if len(ids) == 0 {
		return nil
	}

	orders, err := repo.ListForUpdate(ctx, uniqueIDs(ids))
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.CODStatus() != order.CODPending {
			continue
		}
		o.MarkCODCollected()
		if err = repo.Update(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

func batchNotice(b *batch.Batch, outcome batch.Outcome) ports.Notice {
	message := "Batch " + b.Code() + " is " + outcome.Status.String()
	if outcome.AmountMismatch {
		message += ", discrepancy " + outcome.Discrepancy.String()
	}
	return ports.Notice{
		UserID:    b.CourierID(),
		Title:     "Cash reconciliation",
		Message:   message,
		EventType: "batch_" + outcome.Status.String(),
		Ref:       b.Code(),
	}
}
