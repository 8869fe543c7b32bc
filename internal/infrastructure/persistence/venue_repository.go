package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuecore/backend/internal/domain/shared"
	"github.com/venuecore/backend/internal/domain/venue"
)

// GormVenueRepository implements VenueRepository using GORM
type GormVenueRepository struct {
	db *gorm.DB
}

// NewGormVenueRepository creates a new GormVenueRepository
func NewGormVenueRepository(db *gorm.DB) *GormVenueRepository {
	return &GormVenueRepository{db: db}
}

// FindByIDForTenant finds a venue by ID within a hotel
func (r *GormVenueRepository) FindByIDForTenant(ctx context.Context, hotelID, id uuid.UUID) (*venue.Venue, error) {
	var v venue.Venue
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", hotelID, id).
		First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FindAllForTenant finds all venues for a hotel with filtering
func (r *GormVenueRepository) FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]venue.Venue, error) {
	var venues []venue.Venue
	query := applyFilter(
		r.filteredQuery(ctx, hotelID, filter),
		filter, VenueSortFields, searchVenues,
	)

	if err := query.Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

// CountForTenant counts venues for a hotel matching the filter
func (r *GormVenueRepository) CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.filteredQuery(ctx, hotelID, filter)
	if filter.Search != "" {
		query = searchVenues(query, filter.Search)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a venue
func (r *GormVenueRepository) Save(ctx context.Context, v *venue.Venue) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// DeleteForTenant removes a venue within a hotel
func (r *GormVenueRepository) DeleteForTenant(ctx context.Context, hotelID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", hotelID, id).
		Delete(&venue.Venue{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormVenueRepository) filteredQuery(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&venue.Venue{}).Where("tenant_id = ?", hotelID)
	if active, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}
	return query
}

func searchVenues(query *gorm.DB, search string) *gorm.DB {
	return query.Where("name LIKE ?", "%"+search+"%")
}

// Ensure GormVenueRepository implements VenueRepository
var _ venue.VenueRepository = (*GormVenueRepository)(nil)
