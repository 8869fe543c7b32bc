package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuecore/backend/internal/domain/customer"
	"github.com/venuecore/backend/internal/domain/shared"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByIDForTenant finds a customer by ID within a hotel
func (r *GormCustomerRepository) FindByIDForTenant(ctx context.Context, hotelID, id uuid.UUID) (*customer.Customer, error) {
	var c customer.Customer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", hotelID, id).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAllForTenant finds all customers for a hotel with filtering
func (r *GormCustomerRepository) FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]customer.Customer, error) {
	var customers []customer.Customer
	query := applyFilter(
		r.db.WithContext(ctx).Model(&customer.Customer{}).Where("tenant_id = ?", hotelID),
		filter, CustomerSortFields, searchCustomers,
	)

	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// CountForTenant counts customers for a hotel matching the filter
func (r *GormCustomerRepository) CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&customer.Customer{}).Where("tenant_id = ?", hotelID)
	if filter.Search != "" {
		query = searchCustomers(query, filter.Search)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteForTenant removes a customer within a hotel
func (r *GormCustomerRepository) DeleteForTenant(ctx context.Context, hotelID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", hotelID, id).
		Delete(&customer.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func searchCustomers(query *gorm.DB, search string) *gorm.DB {
	pattern := "%" + search + "%"
	return query.Where("name LIKE ? OR email LIKE ? OR company LIKE ?", pattern, pattern, pattern)
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ customer.CustomerRepository = (*GormCustomerRepository)(nil)
