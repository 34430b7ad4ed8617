package service

import (
	"context"
	"errors"

	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileServicer — handler-facing interface, mocked in tests.
type ProfileServicer interface {
	Get(ctx context.Context, principal string) (*model.UserProfile, error)
	Save(ctx context.Context, principal, displayName string, isTechnician bool, avatarURL string) (*model.UserProfile, error)
	InitializeAccessControl(ctx context.Context, principal string) (model.UserRole, error)
	Role(ctx context.Context, principal string) (model.UserRole, error)
	AssignRole(ctx context.Context, principal string, role model.UserRole) error
	IsAdmin(ctx context.Context, principal string) (bool, error)
}

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(ctx context.Context, principal string) (*model.UserProfile, error) {
	var p model.UserProfile
	if err := s.db.WithContext(ctx).First(&p, "principal = ?", principal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save upserts the caller profile; first save is the profile-setup step.
func (s *ProfileService) Save(ctx context.Context, principal, displayName string, isTechnician bool, avatarURL string) (*model.UserProfile, error) {
	p := &model.UserProfile{
		Principal:    principal,
		DisplayName:  displayName,
		IsTechnician: isTechnician,
		AvatarURL:    avatarURL,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "principal"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "is_technician", "avatar_url", "updated_at"}),
	}).Create(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

// accessControlLockID keys the advisory lock that serializes the
// first-caller-becomes-admin decision across concurrent requests.
const accessControlLockID int64 = 7_421_001

// InitializeAccessControl bootstraps roles: the very first principal becomes
// admin, everyone after that starts as user. Calling again returns the role
// already assigned.
func (s *ProfileService) InitializeAccessControl(ctx context.Context, principal string) (model.UserRole, error) {
	var existing model.RoleAssignment
	err := s.db.WithContext(ctx).First(&existing, "principal = ?", principal).Error
	if err == nil {
		return existing.Role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	role := model.RoleUser
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Count-then-insert must be atomic across principals: without the
		// lock, two concurrent first callers both see an empty table and
		// both become admin. pg_advisory_xact_lock releases on commit.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", accessControlLockID).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&model.RoleAssignment{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			role = model.RoleAdmin
		}
		return tx.Create(&model.RoleAssignment{Principal: principal, Role: role}).Error
	})
	if err != nil {
		// Lost a race with ourselves: re-read whatever won.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.Role(ctx, principal)
		}
		return "", err
	}
	return role, nil
}

// Role returns guest for principals that never initialized access control.
func (s *ProfileService) Role(ctx context.Context, principal string) (model.UserRole, error) {
	var a model.RoleAssignment
	if err := s.db.WithContext(ctx).First(&a, "principal = ?", principal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.RoleGuest, nil
		}
		return "", err
	}
	return a.Role, nil
}

func (s *ProfileService) AssignRole(ctx context.Context, principal string, role model.UserRole) error {
	a := &model.RoleAssignment{Principal: principal, Role: role}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "principal"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(a).Error
}

func (s *ProfileService) IsAdmin(ctx context.Context, principal string) (bool, error) {
	role, err := s.Role(ctx, principal)
	if err != nil {
		return false, err
	}
	return role == model.RoleAdmin, nil
}
