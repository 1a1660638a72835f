package service

import (
	"context"
	"strings"

	"github.com/imaneboulahya/Miso/internal/models"
	"github.com/imaneboulahya/Miso/internal/observability"
	"github.com/imaneboulahya/Miso/internal/repository"
)

type DiscussionService struct {
	discussionRepo repository.DiscussionRepository
}

type CreateDiscussionInput struct {
	AuthorID    uint
	Title       string
	Description string
	ProfilePic  string
}

type PostMessageInput struct {
	AuthorID     uint
	DiscussionID uint
	Text         string
}

func NewDiscussionService(discussionRepo repository.DiscussionRepository) *DiscussionService {
	return &DiscussionService{discussionRepo: discussionRepo}
}

func (s *DiscussionService) CreateDiscussion(ctx context.Context, in CreateDiscussionInput) (*models.Discussion, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if description == "" {
		return nil, models.NewValidationError("Description is required")
	}

	discussion := &models.Discussion{
		Title:       title,
		Description: description,
		AuthorID:    in.AuthorID,
	}
	if in.ProfilePic != "" {
		discussion.ProfilePic = in.ProfilePic
	}

	if err := s.discussionRepo.Create(ctx, discussion); err != nil {
		return nil, err
	}
	return s.discussionRepo.GetByID(ctx, discussion.ID)
}

func (s *DiscussionService) GetDiscussion(ctx context.Context, id uint) (*models.Discussion, error) {
	return s.discussionRepo.GetByID(ctx, id)
}

// Browse lists discussions, optionally narrowed by a search query.
func (s *DiscussionService) Browse(ctx context.Context, query string, limit, offset int) ([]*models.Discussion, error) {
	if query == "" {
		return s.discussionRepo.List(ctx, limit, offset)
	}
	observability.SearchQueries.WithLabelValues("discussions").Inc()
	return s.discussionRepo.Search(ctx, query, limit, offset)
}

func (s *DiscussionService) PostMessage(ctx context.Context, in PostMessageInput) (*models.DiscussionMessage, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Message text is required")
	}

	message := &models.DiscussionMessage{
		Text:         text,
		AuthorID:     in.AuthorID,
		DiscussionID: in.DiscussionID,
	}
	if err := s.discussionRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *DiscussionService) ListMessages(ctx context.Context, discussionID uint) ([]models.DiscussionMessage, error) {
	if _, err := s.discussionRepo.GetByID(ctx, discussionID); err != nil {
		return nil, err
	}
	return s.discussionRepo.ListMessages(ctx, discussionID)
}
