// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"math/rand"
	"strings"

	"github.com/imaneboulahya/Miso/internal/models"
	"github.com/imaneboulahya/Miso/internal/observability"
	"github.com/imaneboulahya/Miso/internal/repository"
)

const (
	// SearchPageSize is how many articles a search page holds.
	SearchPageSize = 9
	// SuggestedCount is how many related articles accompany an article view.
	SuggestedCount = 3
	// sameCategoryCount is how many of the suggestions should share the
	// article's category; the rest are fillers from the whole catalog.
	sameCategoryCount = 2

	excerptLimit = 300
)

type ArticleService struct {
	articleRepo repository.ArticleRepository
	likeRepo    repository.LikeRepository
	// removeImage deletes a stored article image. Called inside the delete
	// transaction so a failure aborts the whole delete.
	removeImage func(imageURL string) error
	// intn returns a random int in [0, n). Injected so sampling is
	// deterministic in tests.
	intn func(n int) int
}

type CreateArticleInput struct {
	AuthorID uint
	Title    string
	Content  string
	Excerpt  string
	Category string
	ImageURL string
}

type SearchArticlesInput struct {
	Query         string
	Category      string
	Page          int
	CurrentUserID uint
}

// SearchArticlesResult is one page of search hits plus paging totals.
type SearchArticlesResult struct {
	Articles   []*models.Article `json:"articles"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

func NewArticleService(
	articleRepo repository.ArticleRepository,
	likeRepo repository.LikeRepository,
	removeImage func(imageURL string) error,
	intn func(n int) int,
) *ArticleService {
	if intn == nil {
		intn = rand.Intn
	}
	return &ArticleService{
		articleRepo: articleRepo,
		likeRepo:    likeRepo,
		removeImage: removeImage,
		intn:        intn,
	}
}

func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	category, ok := models.ParseCategory(in.Category)
	if !ok {
		return nil, models.NewValidationError("Unknown category")
	}

	excerpt := strings.TrimSpace(in.Excerpt)
	if excerpt == "" {
		excerpt = content
	}
	// Truncate on rune boundaries so multi-byte text stays valid.
	if runes := []rune(excerpt); len(runes) > excerptLimit {
		excerpt = string(runes[:excerptLimit])
	}

	article := &models.Article{
		Title:    title,
		Content:  content,
		Excerpt:  excerpt,
		Category: category,
		AuthorID: in.AuthorID,
	}
	if in.ImageURL != "" {
		article.ImageURL = in.ImageURL
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(ctx, article.ID, in.AuthorID)
}

func (s *ArticleService) GetArticle(ctx context.Context, id uint, currentUserID uint) (*models.Article, error) {
	return s.articleRepo.GetByID(ctx, id, currentUserID)
}

func (s *ArticleService) ListRecent(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	return s.articleRepo.ListRecent(ctx, limit, offset, currentUserID)
}

func (s *ArticleService) ListByAuthor(ctx context.Context, authorID, currentUserID uint) ([]*models.Article, error) {
	return s.articleRepo.ListByAuthor(ctx, authorID, currentUserID)
}

func (s *ArticleService) ListByCategory(ctx context.Context, rawCategory string, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	category, ok := models.ParseCategory(rawCategory)
	if !ok {
		return nil, models.NewNotFoundError("Category", rawCategory)
	}
	return s.articleRepo.ListByCategory(ctx, category, limit, offset, currentUserID)
}

func (s *ArticleService) CountByCategory(ctx context.Context) (map[models.Category]int64, error) {
	return s.articleRepo.CountByCategory(ctx)
}

// Search returns one page of matches. An empty query with no category filter
// browses the whole catalog.
func (s *ArticleService) Search(ctx context.Context, in SearchArticlesInput) (*SearchArticlesResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}

	var category models.Category
	if in.Category != "" {
		parsed, ok := models.ParseCategory(in.Category)
		if !ok {
			// No article carries an unknown category; the filter just
			// matches nothing rather than rejecting the request.
			return &SearchArticlesResult{Articles: []*models.Article{}, Page: page}, nil
		}
		category = parsed
	}
	offset := (page - 1) * SearchPageSize

	observability.SearchQueries.WithLabelValues("articles").Inc()

	total, err := s.articleRepo.SearchCount(ctx, in.Query, category)
	if err != nil {
		return nil, err
	}
	articles, err := s.articleRepo.Search(ctx, in.Query, category, SearchPageSize, offset, in.CurrentUserID)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + SearchPageSize - 1) / SearchPageSize)
	return &SearchArticlesResult{
		Articles:   articles,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// Delete removes an article. Only the author may delete it.
func (s *ArticleService) Delete(ctx context.Context, articleID, userID uint) error {
	article, err := s.articleRepo.GetByID(ctx, articleID, userID)
	if err != nil {
		return err
	}
	if article.AuthorID != userID {
		return models.NewUnauthorizedError("Only the author can delete an article")
	}
	return s.articleRepo.DeleteWithDependents(ctx, articleID, s.removeImage)
}

// ToggleLike flips the caller's like and returns the new state and count.
func (s *ArticleService) ToggleLike(ctx context.Context, articleID, userID uint) (bool, int64, error) {
	// Liking a missing article is a 404, not a silent no-op.
	if _, err := s.articleRepo.GetByID(ctx, articleID, userID); err != nil {
		return false, 0, err
	}
	liked, count, err := s.likeRepo.Toggle(ctx, userID, articleID)
	if err != nil {
		return false, 0, err
	}
	if liked {
		observability.ArticleLikes.WithLabelValues("liked").Inc()
	} else {
		observability.ArticleLikes.WithLabelValues("unliked").Inc()
	}
	return liked, count, nil
}

// sample picks up to n distinct IDs with a partial Fisher-Yates shuffle.
func (s *ArticleService) sample(ids []uint, n int) []uint {
	if n > len(ids) {
		n = len(ids)
	}
	picked := make([]uint, len(ids))
	copy(picked, ids)
	for i := 0; i < n; i++ {
		j := i + s.intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:n]
}

// Suggested returns up to three articles to read next: two sharing the
// article's category and one from anywhere else, fewer when the catalog is
// small. The viewed article never suggests itself and no article appears
// twice.
func (s *ArticleService) Suggested(ctx context.Context, articleID, currentUserID uint) ([]*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID, currentUserID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.articleRepo.SuggestionCandidateIDs(ctx, article.Category, articleID)
	if err != nil {
		return nil, err
	}
	chosen := s.sample(candidates, sameCategoryCount)

	// One extra pick from the rest of the catalog, regardless of how many
	// same-category articles were found. Omitted when nothing qualifies.
	exclude := append([]uint{articleID}, chosen...)
	fillers, err := s.articleRepo.CatalogIDsExcluding(ctx, exclude)
	if err != nil {
		return nil, err
	}
	chosen = append(chosen, s.sample(fillers, 1)...)

	articles, err := s.articleRepo.GetByIDs(ctx, chosen, currentUserID)
	if err != nil {
		return nil, err
	}

	// Restore sampling order; GetByIDs does not guarantee it.
	byID := make(map[uint]*models.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}
	ordered := make([]*models.Article, 0, len(chosen))
	for _, id := range chosen {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}
