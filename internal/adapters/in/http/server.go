// Package http exposes the logistics use cases over a JSON API served by
// echo. Callers identify themselves with the X-Actor-Id, X-Actor-Role and
// X-Office-Id headers, which an upstream gateway is expected to set.
package http

import (
	"net/http"

	"logistics/api"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// Handlers groups the use cases the API dispatches to.
type Handlers struct {
	CreateOrder      commands.CreateOrderCommandHandler
	AdvanceOrder     commands.AdvanceOrderToPendingCommandHandler
	CancelOrder      commands.CancelOrderCommandHandler
	TransitionOrder  commands.TransitionOrderCommandHandler
	EditOrder        commands.EditOrderCommandHandler
	StartDelivery    commands.StartDeliveryCommandHandler
	CompleteDelivery commands.CompleteDeliveryCommandHandler
	FailDelivery     commands.FailDeliveryCommandHandler
	RetryDelivery    commands.RetryDeliveryCommandHandler
	StartReturn      commands.StartReturnCommandHandler
	CompleteReturn   commands.CompleteReturnCommandHandler

	CreateShipment          commands.CreateShipmentCommandHandler
	AddOrdersToShipment     commands.AddOrdersToShipmentCommandHandler
	RemoveOrderFromShipment commands.RemoveOrderFromShipmentCommandHandler
	StartShipment           commands.StartShipmentCommandHandler
	FinishShipment          commands.FinishShipmentCommandHandler
	RegisterVehicle         commands.RegisterVehicleCommandHandler

	CollectCash       commands.CollectCashCommandHandler
	SubmitForBatching commands.SubmitForBatchingCommandHandler
	CreateBatch       commands.CreateBatchCommandHandler
	StartChecking     commands.StartCheckingCommandHandler
	CompleteBatch     commands.CompleteBatchCommandHandler
	ChangeBatchStatus commands.ChangeBatchStatusCommandHandler
	AdjustRecord      commands.AdjustRecordCommandHandler

	GetOrderTracking queries.GetOrderTrackingQueryHandler
	GetBatch         queries.GetBatchQueryHandler
	GetOpenRecords   queries.GetOpenRecordsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{h: handlers, logger: logger.With(zap.String("component", "http"))}
}

// Register mounts every route on e and installs the JSON error handler.
// Requests under /api/v1 are validated against the OpenAPI document, which
// is also served at /openapi.yaml and browsable under /swagger/.
func (s *Server) Register(e *echo.Echo) error {
	doc, err := OpenAPI()
	if err != nil {
		return err
	}
	validate, err := ValidatorMiddleware(doc)
	if err != nil {
		return err
	}

	e.HTTPErrorHandler = s.HTTPErrorHandler

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.OpenAPI)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", ActorMiddleware(), validate)

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:id", s.GetOrder)
	v1.GET("/tracking/:code", s.TrackOrder)
	v1.PATCH("/orders/:id", s.EditOrder)
	v1.POST("/orders/:id/submit", s.SubmitOrder)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.POST("/orders/:id/transitions", s.TransitionOrder)
	v1.POST("/orders/:id/delivery", s.StartDelivery)
	v1.POST("/orders/:id/delivery/complete", s.CompleteDelivery)
	v1.POST("/orders/:id/delivery/fail", s.FailDelivery)
	v1.POST("/orders/:id/delivery/retry", s.RetryDelivery)
	v1.POST("/orders/:id/return", s.StartReturn)
	v1.POST("/orders/:id/return/complete", s.CompleteReturn)
	v1.POST("/orders/:id/cash", s.CollectCash)

	v1.POST("/shipments", s.CreateShipment)
	v1.POST("/shipments/:id/orders", s.AddOrdersToShipment)
	v1.DELETE("/shipments/:id/orders/:orderId", s.RemoveOrderFromShipment)
	v1.POST("/shipments/:id/start", s.StartShipment)
	v1.POST("/shipments/:id/finish", s.FinishShipment)
	v1.POST("/vehicles", s.RegisterVehicle)

	v1.GET("/couriers/:id/records", s.GetOpenRecords)
	v1.POST("/couriers/:id/records/submit", s.SubmitForBatching)
	v1.POST("/records/:id/adjust", s.AdjustRecord)
	v1.POST("/batches", s.CreateBatch)
	v1.GET("/batches/:id", s.GetBatch)
	v1.POST("/batches/:id/checking", s.StartChecking)
	v1.POST("/batches/:id/complete", s.CompleteBatch)
	v1.POST("/batches/:id/status", s.ChangeBatchStatus)

	return nil
}
