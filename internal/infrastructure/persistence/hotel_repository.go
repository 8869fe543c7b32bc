package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuecore/backend/internal/domain/hotel"
	"github.com/venuecore/backend/internal/domain/shared"
)

// GormHotelRepository implements HotelRepository using GORM. Hotels are the
// tenant roots, so nothing here is tenant-scoped.
type GormHotelRepository struct {
	db *gorm.DB
}

// NewGormHotelRepository creates a new GormHotelRepository
func NewGormHotelRepository(db *gorm.DB) *GormHotelRepository {
	return &GormHotelRepository{db: db}
}

// FindByID finds a hotel by its ID
func (r *GormHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*hotel.Hotel, error) {
	var h hotel.Hotel
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

// FindAll finds all hotels with filtering
func (r *GormHotelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hotel.Hotel, error) {
	var hotels []hotel.Hotel
	query := applyFilter(r.db.WithContext(ctx).Model(&hotel.Hotel{}), filter, map[string]bool{
		"id": true, "created_at": true, "updated_at": true, "name": true,
	}, func(query *gorm.DB, search string) *gorm.DB {
		return query.Where("name LIKE ?", "%"+search+"%")
	})

	if err := query.Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

// Save creates or updates a hotel
func (r *GormHotelRepository) Save(ctx context.Context, h *hotel.Hotel) error {
	return r.db.WithContext(ctx).Save(h).Error
}

// Count counts hotels matching the filter
func (r *GormHotelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&hotel.Hotel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies pagination, ordering and search to a query. The
// order-by column is validated against the allow list before reaching SQL.
func applyFilter(query *gorm.DB, filter shared.Filter, sortFields map[string]bool, search func(*gorm.DB, string) *gorm.DB) *gorm.DB {
	if filter.Search != "" && search != nil {
		query = search(query, filter.Search)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, sortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormHotelRepository implements HotelRepository
var _ hotel.HotelRepository = (*GormHotelRepository)(nil)
