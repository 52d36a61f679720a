package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req createOrderRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	details, err := req.details()
	if err != nil {
		return s.fail(c, err)
	}
	orderID, err := idOrNew("id", req.ID)
	if err != nil {
		return s.fail(c, err)
	}
	ownerID, err := parseOptionalID("owner_id", req.OwnerID)
	if err != nil {
		return s.fail(c, err)
	}
	var owner kernel.UUID
	if ownerID != nil {
		owner = *ownerID
	}

	cmd, err := commands.NewCreateOrderCommand(actor, orderID, owner, details)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: orderID.String()})
}

func (r createOrderRequest) details() (order.Details, error) {
	sender, err := r.Sender.toDomain()
	if err != nil {
		return order.Details{}, err
	}
	recipient, err := r.Recipient.toDomain()
	if err != nil {
		return order.Details{}, err
	}

	payer := order.PayerCustomer
	if r.Payer != "" {
		if payer, err = order.ParsePayer(r.Payer); err != nil {
			return order.Details{}, err
		}
	}
	from, err := parseOptionalID("from_office_id", r.FromOfficeID)
	if err != nil {
		return order.Details{}, err
	}
	to, err := parseOptionalID("to_office_id", r.ToOfficeID)
	if err != nil {
		return order.Details{}, err
	}

	return order.Details{
		Sender:        sender,
		Recipient:     recipient,
		Weight:        r.Weight,
		DeclaredValue: r.DeclaredValue,
		CODAmount:     r.CODAmount,
		ServiceType:   r.ServiceType,
		Payer:         payer,
		FromOfficeID:  from,
		ToOfficeID:    to,
		Notes:         r.Notes,
	}, nil
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return s.fail(c, err)
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderTrackingQueryByID(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	resp, err := s.h.GetOrderTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toTrackingResponse(resp))
}

// TrackOrder handles GET /api/v1/tracking/:code. It needs no identity.
func (s *Server) TrackOrder(c echo.Context) error {
	query, err := queries.NewGetOrderTrackingQuery(c.Param("code"))
	if err != nil {
		return s.fail(c, err)
	}
	resp, err := s.h.GetOrderTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toTrackingResponse(resp))
}

// EditOrder handles PATCH /api/v1/orders/:id.
func (s *Server) EditOrder(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req editOrderRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	patch, err := req.patch()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewEditOrderCommand(actor, orderID, patch)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.EditOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (r editOrderRequest) patch() (order.Patch, error) {
	patch := order.Patch{
		Weight:        r.Weight,
		DeclaredValue: r.DeclaredValue,
		CODAmount:     r.CODAmount,
		ServiceType:   r.ServiceType,
		Notes:         r.Notes,
	}

	if r.Sender != nil {
		sender, err := r.Sender.toDomain()
		if err != nil {
			return order.Patch{}, err
		}
		patch.Sender = &sender
	}
	if r.Recipient != nil {
		recipient, err := r.Recipient.toDomain()
		if err != nil {
			return order.Patch{}, err
		}
		patch.Recipient = &recipient
	}
	if r.Payer != nil {
		payer, err := order.ParsePayer(*r.Payer)
		if err != nil {
			return order.Patch{}, err
		}
		patch.Payer = &payer
	}

	to, err := parseOptionalID("to_office_id", r.ToOfficeID)
	if err != nil {
		return order.Patch{}, err
	}
	patch.ToOfficeID = to

	return patch, nil
}

// SubmitOrder handles POST /api/v1/orders/:id/submit.
func (s *Server) SubmitOrder(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAdvanceOrderToPendingCommand(actor, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.AdvanceOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req noteRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(actor, orderID, req.Note)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
func (s *Server) TransitionOrder(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req transitionRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	to, err := order.ParseStatus(req.To)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(actor, orderID, to, req.Note)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.TransitionOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// StartDelivery handles POST /api/v1/orders/:id/delivery.
func (s *Server) StartDelivery(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req startDeliveryRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	courierID, err := parseID("courier_id", req.CourierID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewStartDeliveryCommand(actor, orderID, courierID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.StartDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/orders/:id/delivery/complete.
func (s *Server) CompleteDelivery(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(actor, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CompleteDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// FailDelivery handles POST /api/v1/orders/:id/delivery/fail.
func (s *Server) FailDelivery(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req failDeliveryRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	incident, err := order.ParseIncident(req.Incident)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewFailDeliveryCommand(actor, orderID, incident)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.FailDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RetryDelivery handles POST /api/v1/orders/:id/delivery/retry.
func (s *Server) RetryDelivery(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRetryDeliveryCommand(actor, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RetryDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// StartReturn handles POST /api/v1/orders/:id/return.
func (s *Server) StartReturn(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req noteRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewStartReturnCommand(actor, orderID, req.Note)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.StartReturn.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteReturn handles POST /api/v1/orders/:id/return/complete.
func (s *Server) CompleteReturn(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req noteRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCompleteReturnCommand(actor, orderID, req.Note)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CompleteReturn.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// actorAndPath resolves the caller and the :id path parameter.
func (s *Server) actorAndPath(c echo.Context) (kernel.Actor, kernel.UUID, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	return actor, id, nil
}
