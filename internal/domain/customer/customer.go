package customer

import (
	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/shared"
)

// Customer is a hotel-scoped contact that bookings reference. Customers have
// an independent CRUD lifecycle; deleting a customer does not touch their
// historical bookings.
type Customer struct {
	shared.TenantAggregateRoot
	Name    string
	Email   string
	Phone   string
	Company string
	Notes   string
}

// NewCustomer creates a new customer for a hotel
func NewCustomer(hotelID uuid.UUID, name, email, phone string) (*Customer, error) {
	if hotelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HOTEL", "Hotel ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(hotelID),
		Name:                name,
		Email:               email,
		Phone:               phone,
	}, nil
}

// UpdateContact updates the customer's contact details
func (c *Customer) UpdateContact(name, email, phone, company string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Company = company
	return nil
}

// SetNotes replaces the free-text notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
}
