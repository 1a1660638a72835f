package service

import (
	"context"

	"github.com/imaneboulahya/Miso/internal/models"
	"github.com/imaneboulahya/Miso/internal/repository"
	"github.com/imaneboulahya/Miso/internal/validation"
)

type UserService struct {
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
	likeRepo    repository.LikeRepository
	// removeImage deletes a replaced avatar from storage.
	removeImage func(imageURL string) error
}

// Profile bundles everything a profile page needs.
type Profile struct {
	User          *models.User      `json:"user"`
	Articles      []*models.Article `json:"articles"`
	LikesReceived int64             `json:"likes_received"`
}

type UpdateProfileInput struct {
	UserID     uint
	Username   string
	ProfilePic string
}

func NewUserService(
	userRepo repository.UserRepository,
	articleRepo repository.ArticleRepository,
	likeRepo repository.LikeRepository,
	removeImage func(imageURL string) error,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		articleRepo: articleRepo,
		likeRepo:    likeRepo,
		removeImage: removeImage,
	}
}

// GetProfile returns a user's page: the user, their articles newest first,
// and the total likes their articles received.
func (s *UserService) GetProfile(ctx context.Context, userID, currentUserID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	articles, err := s.articleRepo.ListByAuthor(ctx, userID, currentUserID)
	if err != nil {
		return nil, err
	}

	likes, err := s.likeRepo.CountReceivedByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Articles: articles, LikesReceived: likes}, nil
}

// UpdateProfile changes the username and/or avatar. A replaced avatar is
// removed from storage after the update sticks.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	oldPic := ""
	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Username already taken")
		}
		user.Username = in.Username
	}
	if in.ProfilePic != "" && in.ProfilePic != user.ProfilePic {
		oldPic = user.ProfilePic
		user.ProfilePic = in.ProfilePic
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if oldPic != "" && s.removeImage != nil {
		if err := s.removeImage(oldPic); err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	return user, nil
}

func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	if query == "" {
		return s.userRepo.List(ctx, limit, offset)
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}
