package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
)

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req createShipmentRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	shipmentID, err := idOrNew("id", req.ID)
	if err != nil {
		return s.fail(c, err)
	}
	orderIDs, err := parseIDs("order_ids", req.OrderIDs)
	if err != nil {
		return s.fail(c, err)
	}
	vehicleID, err := parseOptionalID("vehicle_id", req.VehicleID)
	if err != nil {
		return s.fail(c, err)
	}
	fromOfficeID, err := parseID("from_office_id", req.FromOfficeID)
	if err != nil {
		return s.fail(c, err)
	}
	employeeID, err := parseID("employee_id", req.EmployeeID)
	if err != nil {
		return s.fail(c, err)
	}
	role, err := kernel.ParseRole(req.EmployeeRole)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateShipmentCommand(actor, shipmentID, orderIDs, vehicleID, fromOfficeID, employeeID, role)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: shipmentID.String()})
}

// AddOrdersToShipment handles POST /api/v1/shipments/:id/orders.
func (s *Server) AddOrdersToShipment(c echo.Context) error {
	actor, shipmentID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req orderIDsRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	orderIDs, err := parseIDs("order_ids", req.OrderIDs)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAddOrdersToShipmentCommand(actor, shipmentID, orderIDs)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.AddOrdersToShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RemoveOrderFromShipment handles DELETE /api/v1/shipments/:id/orders/:orderId.
func (s *Server) RemoveOrderFromShipment(c echo.Context) error {
	actor, shipmentID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRemoveOrderFromShipmentCommand(actor, shipmentID, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RemoveOrderFromShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// StartShipment handles POST /api/v1/shipments/:id/start.
func (s *Server) StartShipment(c echo.Context) error {
	actor, shipmentID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewStartShipmentCommand(actor, shipmentID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.StartShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// FinishShipment handles POST /api/v1/shipments/:id/finish.
func (s *Server) FinishShipment(c echo.Context) error {
	actor, shipmentID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req finishShipmentRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	outcome, err := shipment.ParseStatus(req.Outcome)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewFinishShipmentCommand(actor, shipmentID, outcome)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.FinishShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RegisterVehicle handles POST /api/v1/vehicles.
func (s *Server) RegisterVehicle(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req registerVehicleRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	vehicleID, err := idOrNew("id", req.ID)
	if err != nil {
		return s.fail(c, err)
	}
	officeID, err := parseID("office_id", req.OfficeID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRegisterVehicleCommand(actor, vehicleID, req.Plate, officeID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RegisterVehicle.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: vehicleID.String()})
}
