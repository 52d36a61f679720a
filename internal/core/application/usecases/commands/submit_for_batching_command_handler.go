package commands

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// SubmitForBatchingCommandHandler apportions the handed-over total across the
// courier's open, unbatched records in proportion to their system amounts
// and moves them to in_batch. Records of other couriers, closed records and
// records already in a batch are ignored.
type SubmitForBatchingCommandHandler struct {
	uowFactory  LedgerUoWFactory
	apportioner services.CashApportioner
}

// NewSubmitForBatchingCommandHandler rounds shares to scale decimal places.
func NewSubmitForBatchingCommandHandler(uowFactory LedgerUoWFactory, scale int32) SubmitForBatchingCommandHandler {
	return SubmitForBatchingCommandHandler{
		uowFactory:  uowFactory,
		apportioner: services.NewCashApportioner(scale),
	}
}

func (h SubmitForBatchingCommandHandler) Handle(ctx context.Context, cmd SubmitForBatchingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := authorizeCourierOrReconciler("submit cash", cmd.Actor(), cmd.CourierID()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SubmissionRepository()
	records, err := repo.ListForUpdate(ctx, cmd.RecordIDs())
	if err != nil {
		return err
	}

	eligible := make([]*collection.Submission, 0, len(records))
	for _, r := range records {
		if r.CourierID().IsEqual(cmd.CourierID()) && !r.IsRefund() && r.Status().IsOpen() && r.BatchID() == nil {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		return fmt.Errorf("%w: courier %s has no open records among the selection", errs.ErrNoEligibleRecords, cmd.CourierID())
	}

	if err = h.apportioner.Submit(eligible, cmd.TotalActual()); err != nil {
		return err
	}

	for _, r := range eligible {
		if err = repo.Update(ctx, r); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
