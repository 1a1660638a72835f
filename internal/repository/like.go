package repository

import (
	"context"

	"github.com/imaneboulahya/Miso/internal/cache"
	"github.com/imaneboulahya/Miso/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines persistence operations for article likes.
type LikeRepository interface {
	Toggle(ctx context.Context, userID, articleID uint) (liked bool, count int64, err error)
	CountForArticle(ctx context.Context, articleID uint) (int64, error)
	CountReceivedByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the user's like on an article inside one transaction. Deleting
// first and inserting only when nothing was deleted keeps concurrent toggles
// consistent; the unique index on (user_id, article_id) plus ON CONFLICT DO
// NOTHING means two racing inserts still end with exactly one like row.
func (r *likeRepository) Toggle(ctx context.Context, userID, articleID uint) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND article_id = ?", userID, articleID).
			Delete(&models.Like{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}

		if res.RowsAffected == 0 {
			like := models.Like{UserID: userID, ArticleID: articleID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return models.NewInternalError(err)
			}
			liked = true
		}

		if err := tx.Model(&models.Like{}).
			Where("article_id = ?", articleID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	cache.InvalidateArticle(ctx, articleID)
	return liked, count, nil
}

func (r *likeRepository) CountForArticle(ctx context.Context, articleID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("article_id = ?", articleID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// CountReceivedByAuthor totals the likes across every article the author wrote.
func (r *likeRepository) CountReceivedByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Joins("JOIN articles ON articles.id = likes.article_id").
		Where("articles.author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
