package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"go.uber.org/zap"
)

// FinishShipmentCommandHandler closes a shipment and releases its vehicle.
//
// Completed: every order must be in_transit and moves to at_dest_office.
// After the commit the arrival dispatcher is told once per order; dispatch
// failures are logged and never undo the arrival.
//
// Cancelled: every order is returned to its sender and settled as a
// returned parcel.
type FinishShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	dispatcher ports.ArrivalDispatcher
	settlement services.Settlement
	log        *zap.Logger
}

func NewFinishShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	dispatcher ports.ArrivalDispatcher,
	log *zap.Logger,
) FinishShipmentCommandHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return FinishShipmentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		settlement: services.NewSettlement(),
		log:        log,
	}
}

func (h FinishShipmentCommandHandler) Handle(ctx context.Context, cmd FinishShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	actorID := cmd.Actor().ID
	if err = s.Finish(actorID, cmd.Outcome()); err != nil {
		return err
	}

	if vehicleID := s.VehicleID(); vehicleID != nil {
		vehicleRepo := uow.VehicleRepository()
		v, err := vehicleRepo.GetForUpdate(ctx, *vehicleID)
		if err != nil {
			return err
		}
		if err = v.Release(s.ID()); err != nil {
			return err
		}
		if err = vehicleRepo.Update(ctx, v); err != nil {
			return err
		}
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.ListForUpdate(ctx, s.OrderIDs())
	if err != nil {
		return err
	}

	shipmentID := s.ID()
	for _, o := range orders {
		switch s.Status() {
		case shipment.Completed:
			if o.Status() != order.InTransit {
				return errs.NewInconsistentStateError("order", o.ID(),
					"is "+o.Status().String()+" but shipment "+s.Code()+" expects in_transit")
			}
			err = o.Arrive(actorID, shipmentID)
		default:
			if err = o.ReturnToSender(actorID, &shipmentID, "shipment cancelled"); err == nil {
				err = settleReturned(ctx, uow.SubmissionRepository(), h.settlement, o)
			}
		}
		if err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if s.Status() == shipment.Completed {
		h.dispatchArrivals(ctx, s.OrderIDs())
	}
	return nil
}

func (h FinishShipmentCommandHandler) dispatchArrivals(ctx context.Context, orderIDs []kernel.UUID) {
	if h.dispatcher == nil {
		return
	}
	for _, id := range orderIDs {
		if err := h.dispatcher.AutoAssignOnArrival(ctx, id); err != nil {
			h.log.Warn("arrival dispatch failed", zap.String("order_id", id.String()), zap.Error(err))
		}
	}
}
