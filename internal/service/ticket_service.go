package service

import (
	"context"
	"errors"

	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"gorm.io/gorm"
)

// AnalyticsMetrics is the admin dashboard aggregate. ResolutionRate is a
// whole-number percentage, 0 when there are no tickets.
type AnalyticsMetrics struct {
	TotalTickets    int64 `json:"total_tickets"`
	OpenTickets     int64 `json:"open_tickets"`
	ResolvedTickets int64 `json:"resolved_tickets"`
	ResolutionRate  int64 `json:"resolution_rate"`
}

// ResolutionRate computes resolved*100/total, guarding the empty case.
func ResolutionRate(resolved, total int64) int64 {
	if total == 0 {
		return 0
	}
	return resolved * 100 / total
}

// TicketServicer — handler-facing interface, mocked in tests.
type TicketServicer interface {
	Create(ctx context.Context, customer, technician string) (*model.SupportTicket, error)
	GetByID(ctx context.Context, id uint64) (*model.SupportTicket, error)
	ListForUser(ctx context.Context, principal string) ([]model.SupportTicket, error)
	ListAll(ctx context.Context) ([]model.SupportTicket, error)
	UpdateStatus(ctx context.Context, id uint64, caller string, status model.TicketStatus) (*model.SupportTicket, error)
	AddFeedback(ctx context.Context, id uint64, caller string, rating int, comment string) (*model.SupportTicket, error)
	Analytics(ctx context.Context) (*AnalyticsMetrics, error)
}

type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

// Create opens a ticket for customer against technician. Availability is
// checked at creation time only; a technician going offline later does not
// affect existing tickets.
func (s *TicketService) Create(ctx context.Context, customer, technician string) (*model.SupportTicket, error) {
	var avail model.TechnicianAvailability
	err := s.db.WithContext(ctx).First(&avail, "technician = ?", technician).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTechnicianUnavailable
		}
		return nil, err
	}
	if !avail.IsAvailable {
		return nil, errs.ErrTechnicianUnavailable
	}
	t := &model.SupportTicket{
		Customer:   customer,
		Technician: technician,
		Status:     model.TicketStatusOpen,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketService) GetByID(ctx context.Context, id uint64) (*model.SupportTicket, error) {
	var t model.SupportTicket
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListForUser returns tickets where the principal is either side.
func (s *TicketService) ListForUser(ctx context.Context, principal string) ([]model.SupportTicket, error) {
	var items []model.SupportTicket
	err := s.db.WithContext(ctx).
		Where("customer = ? OR technician = ?", principal, principal).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *TicketService) ListAll(ctx context.Context) ([]model.SupportTicket, error) {
	var items []model.SupportTicket
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus sets an explicit target status. Transitions are not otherwise
// constrained; the participant check is the only guard.
func (s *TicketService) UpdateStatus(ctx context.Context, id uint64, caller string, status model.TicketStatus) (*model.SupportTicket, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsParticipant(caller) {
		return nil, errs.ErrForbidden
	}
	if err := s.db.WithContext(ctx).Model(t).Update("status", status).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// AddFeedback attaches rating+comment once, after resolution, customer only.
func (s *TicketService) AddFeedback(ctx context.Context, id uint64, caller string, rating int, comment string) (*model.SupportTicket, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Customer != caller {
		return nil, errs.ErrForbidden
	}
	if t.Status != model.TicketStatusResolved {
		return nil, errs.ErrTicketNotResolved
	}
	if t.HasFeedback() {
		return nil, errs.ErrFeedbackExists
	}
	changes := map[string]interface{}{
		"feedback_rating":  rating,
		"feedback_comment": comment,
	}
	if err := s.db.WithContext(ctx).Model(t).Updates(changes).Error; err != nil {
		return nil, err
	}
	t.FeedbackRating = &rating
	t.FeedbackComment = &comment
	return t, nil
}

func (s *TicketService) Analytics(ctx context.Context) (*AnalyticsMetrics, error) {
	var m AnalyticsMetrics
	if err := s.db.WithContext(ctx).Model(&model.SupportTicket{}).Count(&m.TotalTickets).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.SupportTicket{}).
		Where("status = ?", model.TicketStatusOpen).Count(&m.OpenTickets).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.SupportTicket{}).
		Where("status = ?", model.TicketStatusResolved).Count(&m.ResolvedTickets).Error; err != nil {
		return nil, err
	}
	m.ResolutionRate = ResolutionRate(m.ResolvedTickets, m.TotalTickets)
	return &m, nil
}
