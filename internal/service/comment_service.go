package service

import (
	"context"
	"strings"

	"github.com/imaneboulahya/Miso/internal/models"
	"github.com/imaneboulahya/Miso/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
}

type CreateCommentInput struct {
	AuthorID  uint
	ArticleID uint
	Text      string
}

func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, articleRepo: articleRepo}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	if _, err := s.articleRepo.GetByID(ctx, in.ArticleID, in.AuthorID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:      text,
		AuthorID:  in.AuthorID,
		ArticleID: in.ArticleID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, articleID uint) ([]models.Comment, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByArticle(ctx, articleID)
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return models.NewUnauthorizedError("Only the author can delete a comment")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
