package repository

import (
	"context"
	"errors"

	"github.com/imaneboulahya/Miso/internal/cache"
	"github.com/imaneboulahya/Miso/internal/models"

	"gorm.io/gorm"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Article, error)
	ListRecent(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Article, error)
	ListByAuthor(ctx context.Context, authorID uint, currentUserID uint) ([]*models.Article, error)
	ListByCategory(ctx context.Context, category models.Category, limit, offset int, currentUserID uint) ([]*models.Article, error)
	Search(ctx context.Context, query string, category models.Category, limit, offset int, currentUserID uint) ([]*models.Article, error)
	SearchCount(ctx context.Context, query string, category models.Category) (int64, error)
	CountByCategory(ctx context.Context) (map[models.Category]int64, error)
	SuggestionCandidateIDs(ctx context.Context, category models.Category, excludeID uint) ([]uint, error)
	CatalogIDsExcluding(ctx context.Context, excludeIDs []uint) ([]uint, error)
	GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Article, error)
	DeleteWithDependents(ctx context.Context, id uint, cleanup func(imageURL string) error) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository returns a new ArticleRepository implementation.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// applyArticleDetails adds subqueries to fetch counts and liked status in a single query.
func (r *articleRepository) applyArticleDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "articles.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.article_id = articles.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.article_id = articles.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.article_id = articles.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Article, error) {
	var article models.Article

	fetch := func() error {
		if err := r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Author").
			First(&article, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Article", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		// Anonymous reads share a cache entry; liked is always false for them.
		err = cache.Aside(ctx, cache.ArticleKey(id), &article, cache.ArticleTTL, fetch)
	} else {
		err = fetch()
	}

	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ListRecent(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	var articles []*models.Article
	if err := r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) ListByAuthor(ctx context.Context, authorID uint, currentUserID uint) ([]*models.Article, error) {
	var articles []*models.Article
	if err := r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

// ListByCategory returns a category page, newest first.
func (r *articleRepository) ListByCategory(ctx context.Context, category models.Category, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	var articles []*models.Article
	if err := r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("category = ?", category).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

// applySearch narrows a query to articles matching the free-text query and
// optional category filter. Matching is case-insensitive over title, content
// and category.
func (r *articleRepository) applySearch(db *gorm.DB, query string, category models.Category) *gorm.DB {
	if query != "" {
		like := "%" + query + "%"
		db = db.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}
	return db
}

func (r *articleRepository) Search(ctx context.Context, query string, category models.Category, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	var articles []*models.Article
	base := r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author")
	if err := r.applySearch(base, query, category).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) SearchCount(ctx context.Context, query string, category models.Category) (int64, error) {
	var count int64
	if err := r.applySearch(r.db.WithContext(ctx).Model(&models.Article{}), query, category).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *articleRepository) CountByCategory(ctx context.Context) (map[models.Category]int64, error) {
	type row struct {
		Category models.Category
		Total    int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Select("category, COUNT(*) as total").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[models.Category]int64, len(models.Categories))
	for _, c := range models.Categories {
		counts[c] = 0
	}
	for _, rw := range rows {
		counts[rw.Category] = rw.Total
	}
	return counts, nil
}

// SuggestionCandidateIDs returns the IDs of every article sharing a category,
// excluding the article itself. Sampling happens in the service layer.
func (r *articleRepository) SuggestionCandidateIDs(ctx context.Context, category models.Category, excludeID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("category = ? AND id <> ?", category, excludeID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// CatalogIDsExcluding returns every article ID not in excludeIDs.
func (r *articleRepository) CatalogIDsExcluding(ctx context.Context, excludeIDs []uint) ([]uint, error) {
	var ids []uint
	q := r.db.WithContext(ctx).Model(&models.Article{}).Order("id ASC")
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *articleRepository) GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var articles []*models.Article
	if err := r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("articles.id IN ?", ids).
		Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

// DeleteWithDependents removes an article together with its comments and
// likes in a single transaction. The cleanup hook runs inside the
// transaction so a failed image removal rolls everything back.
func (r *articleRepository) DeleteWithDependents(ctx context.Context, id uint, cleanup func(imageURL string) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.First(&article, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Article", id)
			}
			return models.NewInternalError(err)
		}

		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Article{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}

		if cleanup != nil {
			if err := cleanup(article.ImageURL); err != nil {
				return models.NewInternalError(err)
			}
		}
		return nil
	})

	if err == nil {
		cache.InvalidateArticle(ctx, id)
	}
	return err
}
