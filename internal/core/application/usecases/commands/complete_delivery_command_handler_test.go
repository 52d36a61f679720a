package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func recordsByKind(records []*collection.Submission) map[collection.Kind]*collection.Submission {
	byKind := make(map[collection.Kind]*collection.Submission, len(records))
	for _, r := range records {
		byKind[r.Kind()] = r
	}
	return byKind
}

func TestCompleteDeliveryCommandHandler_Handle_CreatesFeeAndCODRecords(t *testing.T) {
	e := newEnv(t)
	courier := courierAt(kernel.NewUUID())
	o := e.deliveringOrder(t, courier, parcel{cod: 50000})

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notice) bool {
		return n.EventType == "order_delivered" && n.UserID == o.OwnerID() && n.Ref == o.TrackingCode()
	})).Return(nil).Once()

	cmd, err := commands.NewCompleteDeliveryCommand(courier, o.ID())
	require.NoError(t, err)
	err = commands.NewCompleteDeliveryCommandHandler(e.ledger(), commands.NewNoticeSender(notifier, nil)).
		Handle(t.Context(), cmd)
	require.NoError(t, err)

	stored := e.order(t, o.ID())
	assert.Equal(t, order.Delivered, stored.Status())
	assert.NotNil(t, stored.DeliveredAt())
	assert.Equal(t, order.PaymentPaid, stored.PaymentStatus())
	assert.Equal(t, order.CODPending, stored.CODStatus())

	records := recordsByKind(e.records(t, o.ID()))
	require.Len(t, records, 2)
	assert.True(t, records[collection.KindFee].SystemAmount().Equal(kernel.MoneyFromInt(15000)))
	assert.True(t, records[collection.KindCOD].SystemAmount().Equal(kernel.MoneyFromInt(50000)))
	assert.Equal(t, courier.ID, records[collection.KindCOD].CourierID())
	assert.Equal(t, collection.Pending, records[collection.KindCOD].Status())
	notifier.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_CODCollectedEarlier(t *testing.T) {
	e := newEnv(t)
	courier := courierAt(kernel.NewUUID())
	o := e.deliveringOrder(t, courier, parcel{cod: 50000, payer: order.PayerShop})

	collect, err := commands.NewCollectCashCommand(courier, kernel.NewUUID(), o.ID(), courier.ID, nil, nil, "")
	require.NoError(t, err)
	require.NoError(t, commands.NewCollectCashCommandHandler(e.ledger()).Handle(t.Context(), collect))

	cmd, err := commands.NewCompleteDeliveryCommand(courier, o.ID())
	require.NoError(t, err)
	require.NoError(t, commands.NewCompleteDeliveryCommandHandler(e.ledger(), silent).Handle(t.Context(), cmd))

	records := e.records(t, o.ID())
	require.Len(t, records, 1, "no second COD record and no fee record for shop-paid parcels")
	assert.Equal(t, collection.KindCOD, records[0].Kind())
}

func TestCompleteDeliveryCommandHandler_Handle_OtherCourier(t *testing.T) {
	e := newEnv(t)
	courier := courierAt(kernel.NewUUID())
	o := e.deliveringOrder(t, courier, parcel{})

	cmd, err := commands.NewCompleteDeliveryCommand(courierAt(*courier.OfficeID), o.ID())
	require.NoError(t, err)
	err = commands.NewCompleteDeliveryCommandHandler(e.ledger(), silent).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, order.Delivering, e.order(t, o.ID()).Status())
	assert.Empty(t, e.records(t, o.ID()))
}

func TestFailAndRetryDelivery(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	courier := courierAt(kernel.NewUUID())
	o := e.deliveringOrder(t, courier, parcel{})

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notice) bool {
		return n.EventType == "delivery_failed"
	})).Return(errs.ErrInconsistentState).Once()

	fail, err := commands.NewFailDeliveryCommand(courier, o.ID(), order.IncidentRecipientUnavailable)
	require.NoError(t, err)
	require.NoError(t, commands.NewFailDeliveryCommandHandler(e.orders(), commands.NewNoticeSender(notifier, nil)).
		Handle(ctx, fail), "notifier failures do not fail the command")

	stored := e.order(t, o.ID())
	assert.Equal(t, order.FailedDelivery, stored.Status())
	assert.Equal(t, order.IncidentRecipientUnavailable, stored.Incident())

	retry, err := commands.NewRetryDeliveryCommand(courier, o.ID())
	require.NoError(t, err)

	err = commands.NewRetryDeliveryCommandHandler(e.orders(), false).Handle(ctx, retry)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	require.NoError(t, commands.NewRetryDeliveryCommandHandler(e.orders(), true).Handle(ctx, retry))
	assert.Equal(t, order.Delivering, e.order(t, o.ID()).Status())
	notifier.AssertExpectations(t)
}

func TestNewFailDeliveryCommand_NoIncident(t *testing.T) {
	_, err := commands.NewFailDeliveryCommand(courierAt(kernel.NewUUID()), kernel.NewUUID(), order.IncidentNone)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCompleteReturnCommandHandler_Handle_RefundsCollectedCash(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	courier := courierAt(kernel.NewUUID())
	o := e.deliveringOrder(t, courier, parcel{cod: 50000})

	collect, err := commands.NewCollectCashCommand(courier, kernel.NewUUID(), o.ID(), courier.ID, nil, nil, "")
	require.NoError(t, err)
	require.NoError(t, commands.NewCollectCashCommandHandler(e.ledger()).Handle(ctx, collect))

	fail, err := commands.NewFailDeliveryCommand(courier, o.ID(), order.IncidentRecipientRefused)
	require.NoError(t, err)
	require.NoError(t, commands.NewFailDeliveryCommandHandler(e.orders(), silent).Handle(ctx, fail))

	start, err := commands.NewStartReturnCommand(courier, o.ID(), "back to shop")
	require.NoError(t, err)
	require.NoError(t, commands.NewStartReturnCommandHandler(e.orders()).Handle(ctx, start))
	assert.Equal(t, order.Returning, e.order(t, o.ID()).Status())

	complete, err := commands.NewCompleteReturnCommand(courier, o.ID(), "")
	require.NoError(t, err)
	require.NoError(t, commands.NewCompleteReturnCommandHandler(e.ledger(), silent).Handle(ctx, complete))

	stored := e.order(t, o.ID())
	assert.Equal(t, order.Returned, stored.Status())
	assert.Equal(t, order.PaymentRefunded, stored.PaymentStatus())
	assert.True(t, stored.CODAmount().IsZero(), "refused parcels drop their COD")

	records := recordsByKind(e.records(t, o.ID()))
	require.Len(t, records, 2)
	refund := records[collection.KindRefund]
	require.NotNil(t, refund)
	assert.True(t, refund.SystemAmount().Equal(kernel.MoneyFromInt(-50000)))
	assert.Equal(t, collection.Adjusted, refund.Status())
	assert.Equal(t, collection.Pending, records[collection.KindCOD].Status(), "original record untouched")
}

func TestCompleteReturnCommandHandler_Handle_UnavailableShiftsFee(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	courier := courierAt(kernel.NewUUID())
	o := e.deliveringOrder(t, courier, parcel{})

	fail, err := commands.NewFailDeliveryCommand(courier, o.ID(), order.IncidentRecipientUnavailable)
	require.NoError(t, err)
	require.NoError(t, commands.NewFailDeliveryCommandHandler(e.orders(), silent).Handle(ctx, fail))

	start, err := commands.NewStartReturnCommand(courier, o.ID(), "")
	require.NoError(t, err)
	require.NoError(t, commands.NewStartReturnCommandHandler(e.orders()).Handle(ctx, start))

	complete, err := commands.NewCompleteReturnCommand(courier, o.ID(), "")
	require.NoError(t, err)
	require.NoError(t, commands.NewCompleteReturnCommandHandler(e.ledger(), silent).Handle(ctx, complete))

	stored := e.order(t, o.ID())
	assert.Equal(t, order.Returned, stored.Status())
	assert.Equal(t, order.PayerShop, stored.Payer())
	assert.Empty(t, e.records(t, o.ID()))
}
