package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuecore/backend/internal/domain/audit"
	"github.com/venuecore/backend/internal/domain/shared"
)

// GormAuditRepository implements AuditRepository using GORM. The trail is
// append-only; there is no update or delete path.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append writes a new audit entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindAllForTenant finds audit entries for a hotel with filtering
func (r *GormAuditRepository) FindAllForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]audit.Entry, error) {
	var entries []audit.Entry
	query := applyFilter(r.auditQuery(ctx, hotelID, filter), filter, AuditSortFields, nil)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountForTenant counts audit entries for a hotel matching the filter
func (r *GormAuditRepository) CountForTenant(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.auditQuery(ctx, hotelID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAuditRepository) auditQuery(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&audit.Entry{}).Where("hotel_id = ?", hotelID)

	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "actor_id":
			query = query.Where("actor_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}
	return query
}

// Ensure GormAuditRepository implements AuditRepository
var _ audit.AuditRepository = (*GormAuditRepository)(nil)
