package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// CreateShipmentCommandHandler builds a shipment in one transaction:
// candidate orders are locked (unknown ids are skipped), filtered by the planner, linked and picked up,
// and the vehicle (when given) is taken out of the pool.
//
// Returns:
//   - ErrNoEligibleOrders / ErrNoDestination from planning
//   - ErrVehicleUnavailable when the vehicle is in use
//   - ErrUnauthorized when the vehicle belongs to another office
//   - ErrConcurrentUpdate when an order changed since it was read
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	planner    services.ShipmentPlanner
}

func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewShipmentPlanner(),
	}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if err := authorizeShipmentCrew("create shipment", actor, cmd.EmployeeID(), cmd.FromOfficeID()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	candidates, err := orderRepo.FindForUpdate(ctx, cmd.OrderIDs())
	if err != nil {
		return err
	}

	plan, err := h.planner.Plan(cmd.EmployeeRole(), cmd.FromOfficeID(), candidates)
	if err != nil {
		return err
	}

	s, err := shipment.NewShipment(cmd.ShipmentID(), kernel.NewCode("SHP"), cmd.EmployeeID(),
		cmd.EmployeeRole(), cmd.FromOfficeID(), plan.ToOfficeID, cmd.VehicleID())
	if err != nil {
		return err
	}

	if vehicleID := cmd.VehicleID(); vehicleID != nil {
		vehicleRepo := uow.VehicleRepository()
		v, err := vehicleRepo.GetForUpdate(ctx, *vehicleID)
		if err != nil {
			return err
		}
		if err = v.Acquire(s.ID(), cmd.FromOfficeID()); err != nil {
			return err
		}
		if err = vehicleRepo.Update(ctx, v); err != nil {
			return err
		}
	}

	for _, o := range plan.Orders {
		prior := o.Status()
		if err = o.PickUp(actor.ID, s.ID()); err != nil {
			return err
		}
		if err = s.Link(o.ID(), prior); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// authorizeShipmentCrew lets staff of the office or the assigned employee
// manage a shipment leaving that office.
func authorizeShipmentCrew(action string, actor kernel.Actor, employeeID, officeID kernel.UUID) error {
	if actor.Is(employeeID) && actor.WorksAt(officeID) {
		return nil
	}
	if actor.IsStaff() && actor.WorksAt(officeID) {
		return nil
	}
	return errs.NewUnauthorizedError(action, actor.ID)
}
