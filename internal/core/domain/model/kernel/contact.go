package kernel

import (
	"errors"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when a zero Contact is validated.
var ErrContactIsNotConstructed = errs.NewValueIsRequiredError("contact must be created via NewContact")

// Address is a postal address. Region is the tariff zone used by fee computation.
type Address struct {
	Line     string
	Ward     string
	District string
	Region   string
}

func (a Address) validate() error {
	var errList []error
	if strings.TrimSpace(a.Line) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address line"))
	}
	if strings.TrimSpace(a.Region) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address region"))
	}
	return errors.Join(errList...)
}

// Contact identifies a sender or recipient: who they are and where the parcel goes.
//
// Example:
//
//	recipient, err := kernel.NewContact("Lan Tran", "0901234567", kernel.Address{
//	    Line:   "12 Ly Thuong Kiet",
//	    Region: "north",
//	})
type Contact struct { //nolint:recvcheck //using for validation
	name    string
	phone   string
	address Address
	guard   guard.ConstructorGuard
}

// NewContact validates and builds a Contact. Name, phone, address line and
// region are required; surrounding whitespace is trimmed.
func NewContact(name, phone string, address Address) (Contact, error) {
	c := Contact{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setName(name),
		c.setPhone(phone),
		c.setAddress(address),
	); err != nil {
		return Contact{}, err
	}

	return c, nil
}

// Validate reports whether the contact was built by NewContact.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

func (c Contact) Name() string { return c.name }

func (c Contact) Phone() string { return c.phone }

func (c Contact) Address() Address { return c.address }

func (c *Contact) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("contact name")
	}
	c.name = name
	return nil
}

func (c *Contact) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("contact phone")
	}
	c.phone = phone
	return nil
}

func (c *Contact) setAddress(address Address) error {
	address.Line = strings.TrimSpace(address.Line)
	address.Ward = strings.TrimSpace(address.Ward)
	address.District = strings.TrimSpace(address.District)
	address.Region = strings.TrimSpace(address.Region)
	if err := address.validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}
