package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/customer"
	"github.com/venuecore/backend/internal/domain/shared"
)

// CustomerService handles customer directory operations
type CustomerService struct {
	customerRepo customer.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo customer.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, hotelID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	c, err := customer.NewCustomer(hotelID, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	if req.Company != "" {
		c.Company = req.Company
	}
	if req.Notes != "" {
		c.SetNotes(req.Notes)
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// Get retrieves a customer by ID
func (s *CustomerService) Get(ctx context.Context, hotelID, customerID uuid.UUID) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByIDForTenant(ctx, hotelID, customerID)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// List retrieves customers with pagination
func (s *CustomerService) List(ctx context.Context, hotelID uuid.UUID, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	items, err := s.customerRepo.FindAllForTenant(ctx, hotelID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.CountForTenant(ctx, hotelID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, len(items))
	for i := range items {
		responses[i] = ToCustomerResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates a customer's contact details
func (s *CustomerService) Update(ctx context.Context, hotelID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByIDForTenant(ctx, hotelID, customerID)
	if err != nil {
		return nil, err
	}

	name, email, phone, company := c.Name, c.Email, c.Phone, c.Company
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Company != nil {
		company = *req.Company
	}
	if err := c.UpdateContact(name, email, phone, company); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		c.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// Delete removes a customer. Bookings that reference the customer keep
// their copy of the reference.
func (s *CustomerService) Delete(ctx context.Context, hotelID, customerID uuid.UUID) error {
	return s.customerRepo.DeleteForTenant(ctx, hotelID, customerID)
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=32"`
	Company string `json:"company" binding:"omitempty,max=255"`
	Notes   string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=32"`
	Company *string `json:"company" binding:"omitempty,max=255"`
	Notes   *string `json:"notes" binding:"omitempty,max=2000"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID      uuid.UUID `json:"id"`
	HotelID uuid.UUID `json:"hotel_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Company string    `json:"company,omitempty"`
	Notes   string    `json:"notes,omitempty"`
}

// ToCustomerResponse converts a customer to a response DTO
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:      c.ID,
		HotelID: c.TenantID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
		Notes:   c.Notes,
	}
}
