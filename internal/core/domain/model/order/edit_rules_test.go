package order_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEdit(t *testing.T) {
	tests := []struct {
		name    string
		editor  order.Editor
		creator order.CreatorType
		status  order.Status
		field   order.Field
		allowed bool
	}{
		{"customer edits weight of own draft", order.EditorCustomer, order.CreatorCustomer, order.Draft, order.FieldWeight, true},
		{"customer cannot edit weight once confirmed", order.EditorCustomer, order.CreatorCustomer, order.Confirmed, order.FieldWeight, false},
		{"customer payer locks after draft", order.EditorCustomer, order.CreatorCustomer, order.Pending, order.FieldPayer, false},
		{"customer never edits destination office", order.EditorCustomer, order.CreatorCustomer, order.Draft, order.FieldToOffice, false},
		{"customer edits recipient of depot order", order.EditorCustomer, order.CreatorDepot, order.Confirmed, order.FieldRecipient, true},
		{"customer cannot edit sender of depot order", order.EditorCustomer, order.CreatorDepot, order.Pending, order.FieldSender, false},
		{"staff edits weight before pickup", order.EditorStaff, order.CreatorCustomer, order.ReadyForPickup, order.FieldWeight, true},
		{"staff weight frozen after pickup", order.EditorStaff, order.CreatorCustomer, order.PickedUp, order.FieldWeight, false},
		{"staff recipient open in transit", order.EditorStaff, order.CreatorCustomer, order.InTransit, order.FieldRecipient, true},
		{"staff recipient frozen while delivering", order.EditorStaff, order.CreatorCustomer, order.Delivering, order.FieldRecipient, false},
		{"staff depot weight open at origin office", order.EditorStaff, order.CreatorDepot, order.AtOriginOffice, order.FieldWeight, true},
		{"staff depot weight frozen in transit", order.EditorStaff, order.CreatorDepot, order.InTransit, order.FieldWeight, false},
		{"staff depot destination open at origin office", order.EditorStaff, order.CreatorDepot, order.AtOriginOffice, order.FieldToOffice, true},
		{"staff depot destination frozen once on a shipment", order.EditorStaff, order.CreatorDepot, order.PickedUp, order.FieldToOffice, false},
		{"staff depot destination frozen in transit", order.EditorStaff, order.CreatorDepot, order.InTransit, order.FieldToOffice, false},
		{"staff notes frozen only when cancelled", order.EditorStaff, order.CreatorDepot, order.Cancelled, order.FieldNotes, false},
	}

	for _, tt := range tests {
		t.Run("should check "+tt.name, func(t *testing.T) {
			err := order.CheckEdit(tt.editor, tt.creator, tt.status, []order.Field{tt.field})

			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrFieldLocked)
		})
	}
}

func TestOrder_Edit(t *testing.T) {
	t.Run("should apply an allowed patch", func(t *testing.T) {
		o := newOrder(t, order.CreatorCustomer)
		weight := decimal.RequireFromString("3")
		notes := "fragile"

		err := o.Edit(order.EditorCustomer, order.Patch{Weight: &weight, Notes: &notes})

		require.NoError(t, err)
		assert.True(t, o.Weight().Equal(weight))
		assert.Equal(t, "fragile", o.Notes())
	})

	t.Run("should reject the whole patch if one field is locked", func(t *testing.T) {
		o := newOrder(t, order.CreatorCustomer)
		walk(t, o, order.Confirmed)
		notes := "call first"
		weight := decimal.RequireFromString("3")

		err := o.Edit(order.EditorCustomer, order.Patch{Notes: &notes, Weight: &weight})

		require.ErrorIs(t, err, errs.ErrFieldLocked)
		assert.Empty(t, o.Notes())
	})

	t.Run("should leave the order untouched on invalid values", func(t *testing.T) {
		o := newOrder(t, order.CreatorCustomer)
		weight := decimal.RequireFromString("-1")

		err := o.Edit(order.EditorCustomer, order.Patch{Weight: &weight})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "1.5", o.Weight().String())
	})

	t.Run("should refuse to clear COD after collection started", func(t *testing.T) {
		o := newOrder(t, order.CreatorDepot)
		require.NoError(t, o.MarkCODPending())
		zero := kernel.ZeroMoney()

		err := o.Edit(order.EditorStaff, order.Patch{CODAmount: &zero})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, o.CODAmount().IsPositive())
	})
}

func TestPatch_AffectsFee(t *testing.T) {
	notes := "x"
	weight := decimal.RequireFromString("2")

	assert.False(t, order.Patch{Notes: &notes}.AffectsFee())
	assert.True(t, order.Patch{Weight: &weight}.AffectsFee())
	assert.Equal(t, []order.Field{order.FieldWeight, order.FieldNotes}, order.Patch{Notes: &notes, Weight: &weight}.Fields())
}
