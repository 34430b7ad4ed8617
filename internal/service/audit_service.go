package service

import (
	"context"
	"encoding/csv"
	"strings"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"gorm.io/gorm"
)

// AuditServicer — handler-facing interface, mocked in tests.
type AuditServicer interface {
	Record(ctx context.Context, principal, name, role, email string) (*model.LoginEvent, error)
	List(ctx context.Context) ([]model.LoginEvent, error)
	ExportCSV(ctx context.Context) (string, error)
}

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Record(ctx context.Context, principal, name, role, email string) (*model.LoginEvent, error) {
	e := &model.LoginEvent{
		Name:      name,
		Role:      role,
		Email:     email,
		Principal: principal,
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (s *AuditService) List(ctx context.Context) ([]model.LoginEvent, error) {
	var items []model.LoginEvent
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *AuditService) ExportCSV(ctx context.Context) (string, error) {
	events, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	return RenderLoginEventsCSV(events)
}

// RenderLoginEventsCSV produces the spreadsheet export: a header row followed
// by one row per event. Field order is part of the contract:
// name,role,email,timestamp,principal.
func RenderLoginEventsCSV(events []model.LoginEvent) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"name", "role", "email", "timestamp", "principal"}); err != nil {
		return "", err
	}
	for _, e := range events {
		row := []string{
			e.Name,
			e.Role,
			e.Email,
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.Principal,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}
