package http

import (
	"net/http"
	"slices"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/batch"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CollectCash handles POST /api/v1/orders/:id/cash. The courier defaults
// to the caller.
func (s *Server) CollectCash(c echo.Context) error {
	actor, orderID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req collectCashRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	recordID, err := idOrNew("record_id", req.RecordID)
	if err != nil {
		return s.fail(c, err)
	}
	courierID := actor.ID
	if req.CourierID != nil {
		if courierID, err = parseID("courier_id", *req.CourierID); err != nil {
			return s.fail(c, err)
		}
	}

	cmd, err := commands.NewCollectCashCommand(actor, recordID, orderID, courierID, req.SystemAmount, req.ActualAmount, req.Notes)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CollectCash.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: recordID.String()})
}

// GetOpenRecords handles GET /api/v1/couriers/:id/records. Couriers see
// their own records; reconcilers see anyone's. ?kind= narrows the list to
// fee, cod or refund records.
func (s *Server) GetOpenRecords(c echo.Context) error {
	actor, courierID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	if !actor.Is(courierID) && !actor.IsReconciler() {
		return s.fail(c, errs.NewUnauthorizedError("list records of another courier", actor.ID))
	}

	query, err := queries.NewGetOpenRecordsQuery(courierID)
	if err != nil {
		return s.fail(c, err)
	}
	kind, err := queryString(c, "kind")
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.h.GetOpenRecords.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	if kind != "" {
		views = slices.DeleteFunc(views, func(v queries.RecordView) bool { return v.Kind != kind })
	}

	return c.JSON(http.StatusOK, toRecordResponses(views))
}

// SubmitForBatching handles POST /api/v1/couriers/:id/records/submit.
func (s *Server) SubmitForBatching(c echo.Context) error {
	actor, courierID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req submitForBatchingRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	recordIDs, err := parseIDs("record_ids", req.RecordIDs)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSubmitForBatchingCommand(actor, courierID, recordIDs, req.HandedOver)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.SubmitForBatching.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AdjustRecord handles POST /api/v1/records/:id/adjust.
func (s *Server) AdjustRecord(c echo.Context) error {
	actor, recordID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req adjustRecordRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAdjustRecordCommand(actor, recordID, req.CorrectedAmount, req.Note)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.AdjustRecord.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateBatch handles POST /api/v1/batches.
func (s *Server) CreateBatch(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req createBatchRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	batchID, err := idOrNew("id", req.ID)
	if err != nil {
		return s.fail(c, err)
	}
	courierID, err := parseID("courier_id", req.CourierID)
	if err != nil {
		return s.fail(c, err)
	}
	recordIDs, err := parseIDs("record_ids", req.RecordIDs)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateBatchCommand(actor, batchID, courierID, recordIDs, req.Notes)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateBatch.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: batchID.String()})
}

// GetBatch handles GET /api/v1/batches/:id. Reconcilers only.
func (s *Server) GetBatch(c echo.Context) error {
	actor, batchID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	if !actor.IsReconciler() {
		return s.fail(c, errs.NewUnauthorizedError("view batch", actor.ID))
	}

	query, err := queries.NewGetBatchQuery(batchID)
	if err != nil {
		return s.fail(c, err)
	}
	resp, err := s.h.GetBatch.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toBatchResponse(resp))
}

// StartChecking handles POST /api/v1/batches/:id/checking.
func (s *Server) StartChecking(c echo.Context) error {
	actor, batchID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req startCheckingRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewStartCheckingCommand(actor, batchID, req.ConfirmedActual)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.StartChecking.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteBatch handles POST /api/v1/batches/:id/complete. A partial
// outcome is a successful response with amount_mismatch set.
func (s *Server) CompleteBatch(c echo.Context) error {
	actor, batchID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCompleteBatchCommand(actor, batchID)
	if err != nil {
		return s.fail(c, err)
	}
	outcome, err := s.h.CompleteBatch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOutcomeResponse(outcome))
}

// ChangeBatchStatus handles POST /api/v1/batches/:id/status.
func (s *Server) ChangeBatchStatus(c echo.Context) error {
	actor, batchID, err := s.actorAndPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req changeBatchStatusRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	to, err := batch.ParseStatus(req.To)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewChangeBatchStatusCommand(actor, batchID, to)
	if err != nil {
		return s.fail(c, err)
	}
	outcome, err := s.h.ChangeBatchStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOutcomeResponse(outcome))
}
