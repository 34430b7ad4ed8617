package service

import (
	"context"
	"errors"

	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"gorm.io/gorm"
)

// MessageServicer — handler-facing interface, mocked in tests.
type MessageServicer interface {
	Send(ctx context.Context, ticketID uint64, sender, content, attachmentURL string) (*model.ChatMessage, error)
	ListForTicket(ctx context.Context, ticketID uint64, caller string) ([]model.ChatMessage, error)
	ListForUser(ctx context.Context, principal string) ([]model.ChatMessage, error)
	MarkRead(ctx context.Context, ticketID uint64, caller string) (int64, error)
	Delete(ctx context.Context, messageID uint64, caller string) error
}

// MessageService uses ticket-scoped addressing exclusively: every message
// hangs off one ticket and the recipient is derived as the other participant.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

func (s *MessageService) ticket(ctx context.Context, id uint64, caller string) (*model.SupportTicket, error) {
	var t model.SupportTicket
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, err
	}
	if !t.IsParticipant(caller) {
		return nil, errs.ErrForbidden
	}
	return &t, nil
}

func (s *MessageService) Send(ctx context.Context, ticketID uint64, sender, content, attachmentURL string) (*model.ChatMessage, error) {
	t, err := s.ticket(ctx, ticketID, sender)
	if err != nil {
		return nil, err
	}
	if t.Status == model.TicketStatusResolved {
		return nil, errs.ErrTicketResolved
	}
	m := &model.ChatMessage{
		TicketID:      ticketID,
		Sender:        sender,
		Recipient:     t.OtherParticipant(sender),
		Content:       content,
		AttachmentURL: attachmentURL,
		Delivered:     true,
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) ListForTicket(ctx context.Context, ticketID uint64, caller string) ([]model.ChatMessage, error) {
	if _, err := s.ticket(ctx, ticketID, caller); err != nil {
		return nil, err
	}
	var msgs []model.ChatMessage
	err := s.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListForUser aggregates messages across every ticket the principal
// participates in. The merged slice is re-sorted because per-ticket insertion
// order says nothing about the global timeline.
func (s *MessageService) ListForUser(ctx context.Context, principal string) ([]model.ChatMessage, error) {
	ticketIDs := s.db.Model(&model.SupportTicket{}).
		Select("id").
		Where("customer = ? OR technician = ?", principal, principal)
	var msgs []model.ChatMessage
	err := s.db.WithContext(ctx).
		Where("ticket_id IN (?)", ticketIDs).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	model.SortMessages(msgs)
	return msgs, nil
}

// MarkRead flips the caller's unread incoming messages on the ticket.
// Idempotent: a second call with no new messages affects zero rows.
func (s *MessageService) MarkRead(ctx context.Context, ticketID uint64, caller string) (int64, error) {
	if _, err := s.ticket(ctx, ticketID, caller); err != nil {
		return 0, err
	}
	res := s.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("ticket_id = ? AND recipient = ? AND is_read = ?", ticketID, caller, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (s *MessageService) Delete(ctx context.Context, messageID uint64, caller string) error {
	var m model.ChatMessage
	if err := s.db.WithContext(ctx).First(&m, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrMessageNotFound
		}
		return err
	}
	if m.Sender != caller {
		return errs.ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&m).Error
}
