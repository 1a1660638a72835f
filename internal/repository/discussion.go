package repository

import (
	"context"
	"errors"

	"github.com/imaneboulahya/Miso/internal/models"

	"gorm.io/gorm"
)

// DiscussionRepository defines persistence operations for discussion threads.
type DiscussionRepository interface {
	Create(ctx context.Context, discussion *models.Discussion) error
	GetByID(ctx context.Context, id uint) (*models.Discussion, error)
	List(ctx context.Context, limit, offset int) ([]*models.Discussion, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Discussion, error)
	CreateMessage(ctx context.Context, message *models.DiscussionMessage) error
	ListMessages(ctx context.Context, discussionID uint) ([]models.DiscussionMessage, error)
}

type discussionRepository struct {
	db *gorm.DB
}

// NewDiscussionRepository returns a new DiscussionRepository implementation.
func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) Create(ctx context.Context, discussion *models.Discussion) error {
	if err := r.db.WithContext(ctx).Create(discussion).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *discussionRepository) GetByID(ctx context.Context, id uint) (*models.Discussion, error) {
	var discussion models.Discussion
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Messages.Author").
		First(&discussion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Discussion", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &discussion, nil
}

func (r *discussionRepository) List(ctx context.Context, limit, offset int) ([]*models.Discussion, error) {
	var discussions []*models.Discussion
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&discussions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return discussions, nil
}

// Search matches the query against title and description, case-insensitively,
// newest threads first.
func (r *discussionRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Discussion, error) {
	var discussions []*models.Discussion
	like := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&discussions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return discussions, nil
}

func (r *discussionRepository) CreateMessage(ctx context.Context, message *models.DiscussionMessage) error {
	// The thread must still exist; messages on deleted threads are rejected.
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Discussion{}).
		Where("id = ?", message.DiscussionID).
		Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("Discussion", message.DiscussionID)
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *discussionRepository) ListMessages(ctx context.Context, discussionID uint) ([]models.DiscussionMessage, error) {
	var messages []models.DiscussionMessage
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
