package http

import (
	"errors"
	"fmt"
	"net/http"

	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// errorKinds is checked in order; the first match wins.
var errorKinds = []struct {
	target error
	status int
	kind   string
}{
	{ErrMissingActor, http.StatusUnauthorized, "unauthenticated"},
	{errs.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
	{errs.ErrObjectNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrConcurrentUpdate, http.StatusConflict, "concurrent_update"},
	{errs.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{errs.ErrFieldLocked, http.StatusConflict, "field_locked"},
	{errs.ErrAlreadyCollected, http.StatusConflict, "already_collected"},
	{errs.ErrVehicleUnavailable, http.StatusConflict, "vehicle_unavailable"},
	{errs.ErrInconsistentState, http.StatusConflict, "inconsistent_state"},
	{errs.ErrOrderNotAddable, http.StatusUnprocessableEntity, "order_not_addable"},
	{errs.ErrNoEligibleOrders, http.StatusUnprocessableEntity, "no_eligible_orders"},
	{errs.ErrNoEligibleRecords, http.StatusUnprocessableEntity, "no_eligible_records"},
	{errs.ErrNoDestination, http.StatusUnprocessableEntity, "no_destination"},
	{errs.ErrEmptySelection, http.StatusUnprocessableEntity, "empty_selection"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "value_required"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "value_out_of_range"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "value_invalid"},
}

func classify(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.status, k.kind
		}
	}
	return http.StatusInternalServerError, "internal"
}

func (s *Server) fail(c echo.Context, err error) error {
	status, kind := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		message = http.StatusText(status)
	}
	return c.JSON(status, Error{Code: status, Kind: kind, Message: message})
}

// HTTPErrorHandler renders errors returned by handlers and middleware in
// the same shape as use case failures.
func (s *Server) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, Error{Code: he.Code, Kind: "http", Message: fmt.Sprint(he.Message)})
		return
	}
	_ = s.fail(c, err)
}
