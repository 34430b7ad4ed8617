package service

import (
	"context"
	"errors"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityServicer — handler-facing interface, mocked in tests.
type AvailabilityServicer interface {
	Set(ctx context.Context, technician string, isAvailable bool) (*model.TechnicianAvailability, error)
	Get(ctx context.Context, technician string) (*model.TechnicianAvailability, error)
	List(ctx context.Context) ([]model.TechnicianAvailability, error)
	AllOffline(ctx context.Context) (int64, error)
}

type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// Set upserts the technician's availability record. Only principals whose
// profile carries is_technician may have one; otherwise any caller could list
// itself and start receiving tickets.
func (s *AvailabilityService) Set(ctx context.Context, technician string, isAvailable bool) (*model.TechnicianAvailability, error) {
	var p model.UserProfile
	if err := s.db.WithContext(ctx).First(&p, "principal = ?", technician).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrForbidden
		}
		return nil, err
	}
	if !p.IsTechnician {
		return nil, errs.ErrForbidden
	}
	a := &model.TechnicianAvailability{
		Technician:  technician,
		IsAvailable: isAvailable,
		LastUpdated: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "technician"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_available", "last_updated"}),
	}).Create(a).Error
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AvailabilityService) Get(ctx context.Context, technician string) (*model.TechnicianAvailability, error) {
	var a model.TechnicianAvailability
	if err := s.db.WithContext(ctx).First(&a, "technician = ?", technician).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAvailabilityNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *AvailabilityService) List(ctx context.Context) ([]model.TechnicianAvailability, error) {
	var items []model.TechnicianAvailability
	if err := s.db.WithContext(ctx).Order("technician ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AllOffline force-flips every available technician, returning how many flipped.
func (s *AvailabilityService) AllOffline(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.TechnicianAvailability{}).
		Where("is_available = ?", true).
		Updates(map[string]interface{}{
			"is_available": false,
			"last_updated": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
