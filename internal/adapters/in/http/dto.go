package http

import (
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type addressDTO struct {
	Line     string `json:"line"`
	Ward     string `json:"ward"`
	District string `json:"district"`
	Region   string `json:"region"`
}

type contactDTO struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Address addressDTO `json:"address"`
}

func (d contactDTO) toDomain() (kernel.Contact, error) {
	return kernel.NewContact(d.Name, d.Phone, kernel.Address{
		Line:     d.Address.Line,
		Ward:     d.Address.Ward,
		District: d.Address.District,
		Region:   d.Address.Region,
	})
}

type createOrderRequest struct {
	ID            *string         `json:"id"`
	OwnerID       *string         `json:"owner_id"`
	Sender        contactDTO      `json:"sender"`
	Recipient     contactDTO      `json:"recipient"`
	Weight        decimal.Decimal `json:"weight"`
	DeclaredValue kernel.Money    `json:"declared_value"`
	CODAmount     kernel.Money    `json:"cod_amount"`
	ServiceType   string          `json:"service_type"`
	Payer         string          `json:"payer"`
	FromOfficeID  *string         `json:"from_office_id"`
	ToOfficeID    *string         `json:"to_office_id"`
	Notes         string          `json:"notes"`
}

type editOrderRequest struct {
	Sender        *contactDTO      `json:"sender"`
	Recipient     *contactDTO      `json:"recipient"`
	Weight        *decimal.Decimal `json:"weight"`
	DeclaredValue *kernel.Money    `json:"declared_value"`
	CODAmount     *kernel.Money    `json:"cod_amount"`
	ServiceType   *string          `json:"service_type"`
	Payer         *string          `json:"payer"`
	ToOfficeID    *string          `json:"to_office_id"`
	Notes         *string          `json:"notes"`
}

type noteRequest struct {
	Note string `json:"note"`
}

type transitionRequest struct {
	To   string `json:"to"`
	Note string `json:"note"`
}

type startDeliveryRequest struct {
	CourierID string `json:"courier_id"`
}

type failDeliveryRequest struct {
	Incident string `json:"incident"`
}

type collectCashRequest struct {
	RecordID     *string       `json:"record_id"`
	CourierID    *string       `json:"courier_id"`
	SystemAmount *kernel.Money `json:"system_amount"`
	ActualAmount *kernel.Money `json:"actual_amount"`
	Notes        string        `json:"notes"`
}

type createShipmentRequest struct {
	ID           *string  `json:"id"`
	OrderIDs     []string `json:"order_ids"`
	VehicleID    *string  `json:"vehicle_id"`
	FromOfficeID string   `json:"from_office_id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeRole string   `json:"employee_role"`
}

type orderIDsRequest struct {
	OrderIDs []string `json:"order_ids"`
}

type finishShipmentRequest struct {
	Outcome string `json:"outcome"`
}

type registerVehicleRequest struct {
	ID       *string `json:"id"`
	Plate    string  `json:"plate"`
	OfficeID string  `json:"office_id"`
}

type submitForBatchingRequest struct {
	RecordIDs  []string     `json:"record_ids"`
	HandedOver kernel.Money `json:"handed_over"`
}

type createBatchRequest struct {
	ID        *string  `json:"id"`
	CourierID string   `json:"courier_id"`
	RecordIDs []string `json:"record_ids"`
	Notes     string   `json:"notes"`
}

type startCheckingRequest struct {
	ConfirmedActual *kernel.Money `json:"confirmed_actual"`
}

type changeBatchStatusRequest struct {
	To string `json:"to"`
}

type adjustRecordRequest struct {
	CorrectedAmount kernel.Money `json:"corrected_amount"`
	Note            string       `json:"note"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type trackingEventResponse struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorID    string    `json:"actor_id"`
	ShipmentID *string   `json:"shipment_id,omitempty"`
	Note       string    `json:"note,omitempty"`
	At         time.Time `json:"at"`
}

type trackingResponse struct {
	ID            string                  `json:"id"`
	TrackingCode  string                  `json:"tracking_code"`
	Status        string                  `json:"status"`
	PaymentStatus string                  `json:"payment_status"`
	CODStatus     string                  `json:"cod_status"`
	Incident      string                  `json:"incident"`
	ShippingFee   kernel.Money            `json:"shipping_fee"`
	CODAmount     kernel.Money            `json:"cod_amount"`
	FromOfficeID  *string                 `json:"from_office_id,omitempty"`
	ToOfficeID    *string                 `json:"to_office_id,omitempty"`
	CourierID     *string                 `json:"courier_id,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	DeliveredAt   *time.Time              `json:"delivered_at,omitempty"`
	History       []trackingEventResponse `json:"history"`
}

func toTrackingResponse(r queries.GetOrderTrackingQueryResponse) trackingResponse {
	resp := trackingResponse{
		ID:            r.ID.String(),
		TrackingCode:  r.TrackingCode,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		CODStatus:     r.CODStatus,
		Incident:      r.Incident,
		ShippingFee:   r.ShippingFee,
		CODAmount:     r.CODAmount,
		FromOfficeID:  idString(r.FromOfficeID),
		ToOfficeID:    idString(r.ToOfficeID),
		CourierID:     idString(r.CourierID),
		CreatedAt:     r.CreatedAt,
		DeliveredAt:   r.DeliveredAt,
		History:       make([]trackingEventResponse, 0, len(r.History)),
	}
	for _, e := range r.History {
		resp.History = append(resp.History, trackingEventResponse{
			From:       e.From,
			To:         e.To,
			ActorID:    e.ActorID.String(),
			ShipmentID: idString(e.ShipmentID),
			Note:       e.Note,
			At:         e.At,
		})
	}
	return resp
}

type recordResponse struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	OrderID      string       `json:"order_id"`
	Kind         string       `json:"kind"`
	Status       string       `json:"status"`
	SystemAmount kernel.Money `json:"system_amount"`
	ActualAmount kernel.Money `json:"actual_amount"`
	Discrepancy  kernel.Money `json:"discrepancy"`
	CreatedAt    time.Time    `json:"created_at"`
}

func toRecordResponses(views []queries.RecordView) []recordResponse {
	out := make([]recordResponse, 0, len(views))
	for _, v := range views {
		out = append(out, recordResponse{
			ID:           v.ID.String(),
			Code:         v.Code,
			OrderID:      v.OrderID.String(),
			Kind:         v.Kind,
			Status:       v.Status,
			SystemAmount: v.SystemAmount,
			ActualAmount: v.ActualAmount,
			Discrepancy:  v.Discrepancy,
			CreatedAt:    v.CreatedAt,
		})
	}
	return out
}

type batchResponse struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	CourierID   string           `json:"courier_id"`
	Status      string           `json:"status"`
	TotalSystem kernel.Money     `json:"total_system"`
	TotalActual kernel.Money     `json:"total_actual"`
	Discrepancy kernel.Money     `json:"discrepancy"`
	CheckedBy   *string          `json:"checked_by,omitempty"`
	CheckedAt   *time.Time       `json:"checked_at,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Records     []recordResponse `json:"records"`
}

func toBatchResponse(r queries.GetBatchQueryResponse) batchResponse {
	return batchResponse{
		ID:          r.ID.String(),
		Code:        r.Code,
		CourierID:   r.CourierID.String(),
		Status:      r.Status,
		TotalSystem: r.TotalSystem,
		TotalActual: r.TotalActual,
		Discrepancy: r.Discrepancy,
		CheckedBy:   idString(r.CheckedBy),
		CheckedAt:   r.CheckedAt,
		Notes:       r.Notes,
		Records:     toRecordResponses(r.Records),
	}
}

type outcomeResponse struct {
	Status         string       `json:"status"`
	AmountMismatch bool         `json:"amount_mismatch"`
	Discrepancy    kernel.Money `json:"discrepancy"`
	Mismatched     []string     `json:"mismatched"`
	Unchanged      bool         `json:"unchanged"`
}

func toOutcomeResponse(o batch.Outcome) outcomeResponse {
	mismatched := make([]string, 0, len(o.Mismatched))
	for _, id := range o.Mismatched {
		mismatched = append(mismatched, id.String())
	}
	return outcomeResponse{
		Status:         o.Status.String(),
		AmountMismatch: o.AmountMismatch,
		Discrepancy:    o.Discrepancy,
		Mismatched:     mismatched,
		Unchanged:      o.Unchanged,
	}
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseID(field, raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(field)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return id, nil
}

func parseOptionalID(field string, raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseID(field, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// idOrNew parses a client supplied id or generates one.
func idOrNew(field string, raw *string) (kernel.UUID, error) {
	id, err := parseOptionalID(field, raw)
	switch {
	case err != nil:
		return kernel.UUID{}, err
	case id == nil:
		return kernel.NewUUID(), nil
	default:
		return *id, nil
	}
}

func parseIDs(field string, raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := parseID(field, r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// pathID binds a uuid path parameter the way generated echo wrappers do.
func pathID(c echo.Context, name string) (kernel.UUID, error) {
	raw := c.Param(name)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, raw, &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}

// queryString binds an optional form-style query parameter.
func queryString(c echo.Context, name string) (string, error) {
	var value string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
