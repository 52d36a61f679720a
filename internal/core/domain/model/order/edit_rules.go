package order

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Field names an editable order attribute.
type Field string

const (
	FieldSender        Field = "sender"
	FieldRecipient     Field = "recipient"
	FieldWeight        Field = "weight"
	FieldDeclaredValue Field = "declaredValue"
	FieldCODAmount     Field = "codAmount"
	FieldServiceType   Field = "serviceType"
	FieldPayer         Field = "payer"
	FieldToOffice      Field = "toOffice"
	FieldNotes         Field = "notes"
)

// Editor is the kind of identity requesting an edit.
type Editor int

const (
	EditorCustomer Editor = iota + 1
	EditorStaff
)

// Rule gates one field by order status. An allow-list rule permits edits only
// in the listed statuses; a deny-list rule permits edits everywhere except
// the listed statuses.
type Rule struct {
	allowList bool
	statuses  map[Status]struct{}
}

// EditableIn builds an allow-list rule.
func EditableIn(statuses ...Status) Rule {
	return Rule{allowList: true, statuses: statusSet(statuses)}
}

// FrozenIn builds a deny-list rule.
func FrozenIn(statuses ...Status) Rule {
	return Rule{allowList: false, statuses: statusSet(statuses)}
}

// Permits reports whether the field may be written while the order is in s.
func (r Rule) Permits(s Status) bool {
	_, listed := r.statuses[s]
	return listed == r.allowList
}

type ruleKey struct {
	editor  Editor
	creator CreatorType
}

var afterPickup = []Status{
	PickedUp, AtOriginOffice, InTransit, AtDestOffice, Delivering,
	Delivered, FailedDelivery, Returning, Returned, Cancelled,
}

var finished = []Status{Delivered, FailedDelivery, Returning, Returned, Cancelled}

// ruleTables holds one field table per (editor, order origin). A field absent
// from a table is never editable by that editor.
var ruleTables = map[ruleKey]map[Field]Rule{
	{EditorCustomer, CreatorCustomer}: {
		FieldSender:        EditableIn(Draft, Pending),
		FieldRecipient:     EditableIn(Draft, Pending),
		FieldWeight:        EditableIn(Draft, Pending),
		FieldDeclaredValue: EditableIn(Draft, Pending),
		FieldCODAmount:     EditableIn(Draft, Pending),
		FieldServiceType:   EditableIn(Draft, Pending),
		FieldPayer:         EditableIn(Draft),
		FieldNotes:         EditableIn(Draft, Pending, Confirmed),
	},
	{EditorCustomer, CreatorDepot}: {
		FieldRecipient: EditableIn(Pending, Confirmed),
		FieldNotes:     EditableIn(Pending, Confirmed, ReadyForPickup),
	},
	{EditorStaff, CreatorCustomer}: {
		FieldSender:        FrozenIn(afterPickup...),
		FieldRecipient:     FrozenIn(append([]Status{Delivering}, finished...)...),
		FieldWeight:        FrozenIn(afterPickup...),
		FieldDeclaredValue: FrozenIn(afterPickup...),
		FieldCODAmount:     FrozenIn(afterPickup...),
		FieldServiceType:   FrozenIn(afterPickup...),
		FieldPayer:         EditableIn(Draft, Pending, Confirmed),
		FieldToOffice:      FrozenIn(afterPickup...),
		FieldNotes:         FrozenIn(Cancelled),
	},
	{EditorStaff, CreatorDepot}: {
		FieldSender:        EditableIn(Pending, Confirmed, ReadyForPickup, PickingUp),
		FieldRecipient:     FrozenIn(append([]Status{Delivering}, finished...)...),
		FieldWeight:        EditableIn(Pending, Confirmed, ReadyForPickup, PickingUp, PickedUp, AtOriginOffice),
		FieldDeclaredValue: EditableIn(Pending, Confirmed, ReadyForPickup, PickingUp, PickedUp, AtOriginOffice),
		FieldCODAmount:     EditableIn(Pending, Confirmed, ReadyForPickup, PickingUp, PickedUp, AtOriginOffice),
		FieldServiceType:   EditableIn(Pending, Confirmed, ReadyForPickup, PickingUp, PickedUp, AtOriginOffice),
		FieldPayer:         FrozenIn(finished...),
		FieldToOffice:      FrozenIn(append([]Status{PickedUp, InTransit, AtDestOffice, Delivering}, finished...)...),
		FieldNotes:         FrozenIn(Cancelled),
	},
}

// RuleFor looks up the rule for a field. ok is false when the editor may never
// change it on orders of this origin.
func RuleFor(editor Editor, creator CreatorType, field Field) (Rule, bool) {
	rule, ok := ruleTables[ruleKey{editor, creator}][field]
	return rule, ok
}

// CheckEdit returns a FieldLockedError for the first field the editor may not
// write in status s.
func CheckEdit(editor Editor, creator CreatorType, s Status, fields []Field) error {
	for _, f := range fields {
		rule, ok := RuleFor(editor, creator, f)
		if !ok || !rule.Permits(s) {
			return errs.NewFieldLockedError(string(f), s)
		}
	}
	return nil
}

// Patch lists requested changes; nil fields are left untouched.
type Patch struct {
	Sender        *kernel.Contact
	Recipient     *kernel.Contact
	Weight        *decimal.Decimal
	DeclaredValue *kernel.Money
	CODAmount     *kernel.Money
	ServiceType   *string
	Payer         *Payer
	ToOfficeID    *kernel.UUID
	Notes         *string
}

// Fields returns the fields the patch writes, in a stable order.
func (p Patch) Fields() []Field {
	var fields []Field
	if p.Sender != nil {
		fields = append(fields, FieldSender)
	}
	if p.Recipient != nil {
		fields = append(fields, FieldRecipient)
	}
	if p.Weight != nil {
		fields = append(fields, FieldWeight)
	}
	if p.DeclaredValue != nil {
		fields = append(fields, FieldDeclaredValue)
	}
	if p.CODAmount != nil {
		fields = append(fields, FieldCODAmount)
	}
	if p.ServiceType != nil {
		fields = append(fields, FieldServiceType)
	}
	if p.Payer != nil {
		fields = append(fields, FieldPayer)
	}
	if p.ToOfficeID != nil {
		fields = append(fields, FieldToOffice)
	}
	if p.Notes != nil {
		fields = append(fields, FieldNotes)
	}
	return fields
}

// AffectsFee reports whether the shipping fee must be recomputed after applying p.
func (p Patch) AffectsFee() bool {
	return p.Sender != nil || p.Recipient != nil || p.Weight != nil ||
		p.DeclaredValue != nil || p.CODAmount != nil || p.ServiceType != nil
}

func statusSet(statuses []Status) map[Status]struct{} {
	set := make(map[Status]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}
