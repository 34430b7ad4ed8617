package service

import (
	"context"
	"errors"

	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"gorm.io/gorm"
)

// KnowledgeServicer — handler-facing interface, mocked in tests.
type KnowledgeServicer interface {
	List(ctx context.Context) ([]model.KBArticle, error)
	Get(ctx context.Context, id uint64) (*model.KBArticle, error)
	Search(ctx context.Context, term string) ([]model.KBArticle, error)
	ByCategory(ctx context.Context, category model.KnowledgeCategory) ([]model.KBArticle, error)
	Create(ctx context.Context, title string, category model.KnowledgeCategory, body string, tags []string) (*model.KBArticle, error)
	Update(ctx context.Context, id uint64, title string, category model.KnowledgeCategory, body string, tags []string) (*model.KBArticle, error)
	Delete(ctx context.Context, id uint64) error
	IncrementViewCount(ctx context.Context, id uint64) error
}

type KnowledgeService struct {
	db *gorm.DB
}

func NewKnowledgeService(db *gorm.DB) *KnowledgeService {
	return &KnowledgeService{db: db}
}

func (s *KnowledgeService) List(ctx context.Context) ([]model.KBArticle, error) {
	var items []model.KBArticle
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *KnowledgeService) Get(ctx context.Context, id uint64) (*model.KBArticle, error) {
	var a model.KBArticle
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrArticleNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Search is a case-insensitive substring match over title and body.
func (s *KnowledgeService) Search(ctx context.Context, term string) ([]model.KBArticle, error) {
	pattern := "%" + term + "%"
	var items []model.KBArticle
	err := s.db.WithContext(ctx).
		Where("title ILIKE ? OR body ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *KnowledgeService) ByCategory(ctx context.Context, category model.KnowledgeCategory) ([]model.KBArticle, error) {
	var items []model.KBArticle
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *KnowledgeService) Create(ctx context.Context, title string, category model.KnowledgeCategory, body string, tags []string) (*model.KBArticle, error) {
	a := &model.KBArticle{
		Title:    title,
		Body:     body,
		Category: category,
		Tags:     tags,
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (s *KnowledgeService) Update(ctx context.Context, id uint64, title string, category model.KnowledgeCategory, body string, tags []string) (*model.KBArticle, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Title = title
	a.Category = category
	a.Body = body
	a.Tags = tags
	if err := s.db.WithContext(ctx).Save(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (s *KnowledgeService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.KBArticle{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrArticleNotFound
	}
	return nil
}

// IncrementViewCount bumps the counter atomically in SQL. Each call counts:
// deduplicating remounted detail views is left to the client.
func (s *KnowledgeService) IncrementViewCount(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Model(&model.KBArticle{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrArticleNotFound
	}
	return nil
}
