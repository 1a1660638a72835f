package service

import (
	"context"

	"github.com/imaneboulahya/Miso/internal/models"
)

// articleRepoStub is a stub for repository.ArticleRepository.
type articleRepoStub struct {
	createFn                 func(context.Context, *models.Article) error
	getByIDFn                func(context.Context, uint, uint) (*models.Article, error)
	listRecentFn             func(context.Context, int, int, uint) ([]*models.Article, error)
	listByAuthorFn           func(context.Context, uint, uint) ([]*models.Article, error)
	listByCategoryFn         func(context.Context, models.Category, int, int, uint) ([]*models.Article, error)
	searchFn                 func(context.Context, string, models.Category, int, int, uint) ([]*models.Article, error)
	searchCountFn            func(context.Context, string, models.Category) (int64, error)
	countByCategoryFn        func(context.Context) (map[models.Category]int64, error)
	suggestionCandidateIDsFn func(context.Context, models.Category, uint) ([]uint, error)
	catalogIDsExcludingFn    func(context.Context, []uint) ([]uint, error)
	getByIDsFn               func(context.Context, []uint, uint) ([]*models.Article, error)
	deleteWithDependentsFn   func(context.Context, uint, func(string) error) error
}

func (s *articleRepoStub) Create(ctx context.Context, a *models.Article) error {
	return s.createFn(ctx, a)
}
func (s *articleRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Article, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *articleRepoStub) ListRecent(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	return s.listRecentFn(ctx, limit, offset, currentUserID)
}
func (s *articleRepoStub) ListByAuthor(ctx context.Context, authorID, currentUserID uint) ([]*models.Article, error) {
	return s.listByAuthorFn(ctx, authorID, currentUserID)
}
func (s *articleRepoStub) ListByCategory(ctx context.Context, category models.Category, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	return s.listByCategoryFn(ctx, category, limit, offset, currentUserID)
}
func (s *articleRepoStub) Search(ctx context.Context, query string, category models.Category, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	return s.searchFn(ctx, query, category, limit, offset, currentUserID)
}
func (s *articleRepoStub) SearchCount(ctx context.Context, query string, category models.Category) (int64, error) {
	return s.searchCountFn(ctx, query, category)
}
func (s *articleRepoStub) CountByCategory(ctx context.Context) (map[models.Category]int64, error) {
	return s.countByCategoryFn(ctx)
}
func (s *articleRepoStub) SuggestionCandidateIDs(ctx context.Context, category models.Category, excludeID uint) ([]uint, error) {
	return s.suggestionCandidateIDsFn(ctx, category, excludeID)
}
func (s *articleRepoStub) CatalogIDsExcluding(ctx context.Context, excludeIDs []uint) ([]uint, error) {
	return s.catalogIDsExcludingFn(ctx, excludeIDs)
}
func (s *articleRepoStub) GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Article, error) {
	return s.getByIDsFn(ctx, ids, currentUserID)
}
func (s *articleRepoStub) DeleteWithDependents(ctx context.Context, id uint, cleanup func(string) error) error {
	return s.deleteWithDependentsFn(ctx, id, cleanup)
}

func noopArticleRepo() *articleRepoStub {
	return &articleRepoStub{
		createFn: func(_ context.Context, a *models.Article) error {
			a.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Article, error) {
			return &models.Article{ID: id, Category: models.CategoryArt, AuthorID: 1}, nil
		},
		listRecentFn: func(context.Context, int, int, uint) ([]*models.Article, error) {
			return nil, nil
		},
		listByAuthorFn: func(context.Context, uint, uint) ([]*models.Article, error) {
			return nil, nil
		},
		listByCategoryFn: func(context.Context, models.Category, int, int, uint) ([]*models.Article, error) {
			return nil, nil
		},
		searchFn: func(context.Context, string, models.Category, int, int, uint) ([]*models.Article, error) {
			return nil, nil
		},
		searchCountFn: func(context.Context, string, models.Category) (int64, error) {
			return 0, nil
		},
		countByCategoryFn: func(context.Context) (map[models.Category]int64, error) {
			return map[models.Category]int64{}, nil
		},
		suggestionCandidateIDsFn: func(context.Context, models.Category, uint) ([]uint, error) {
			return nil, nil
		},
		catalogIDsExcludingFn: func(context.Context, []uint) ([]uint, error) {
			return nil, nil
		},
		getByIDsFn: func(_ context.Context, ids []uint, _ uint) ([]*models.Article, error) {
			articles := make([]*models.Article, 0, len(ids))
			for _, id := range ids {
				articles = append(articles, &models.Article{ID: id})
			}
			return articles, nil
		},
		deleteWithDependentsFn: func(context.Context, uint, func(string) error) error {
			return nil
		},
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn                func(context.Context, uint, uint) (bool, int64, error)
	countForArticleFn       func(context.Context, uint) (int64, error)
	countReceivedByAuthorFn func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID, articleID uint) (bool, int64, error) {
	return s.toggleFn(ctx, userID, articleID)
}
func (s *likeRepoStub) CountForArticle(ctx context.Context, articleID uint) (int64, error) {
	return s.countForArticleFn(ctx, articleID)
}
func (s *likeRepoStub) CountReceivedByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countReceivedByAuthorFn(ctx, authorID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn:                func(context.Context, uint, uint) (bool, int64, error) { return true, 1, nil },
		countForArticleFn:       func(context.Context, uint) (int64, error) { return 0, nil },
		countReceivedByAuthorFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listByArticleFn func(context.Context, uint) ([]models.Comment, error)
	deleteFn        func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByArticle(ctx context.Context, articleID uint) ([]models.Comment, error) {
	return s.listByArticleFn(ctx, articleID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByArticleFn: func(context.Context, uint) ([]models.Comment, error) { return nil, nil },
		deleteFn:        func(context.Context, uint) error { return nil },
	}
}

// discussionRepoStub is a stub for repository.DiscussionRepository.
type discussionRepoStub struct {
	createFn        func(context.Context, *models.Discussion) error
	getByIDFn       func(context.Context, uint) (*models.Discussion, error)
	listFn          func(context.Context, int, int) ([]*models.Discussion, error)
	searchFn        func(context.Context, string, int, int) ([]*models.Discussion, error)
	createMessageFn func(context.Context, *models.DiscussionMessage) error
	listMessagesFn  func(context.Context, uint) ([]models.DiscussionMessage, error)
}

func (s *discussionRepoStub) Create(ctx context.Context, d *models.Discussion) error {
	return s.createFn(ctx, d)
}
func (s *discussionRepoStub) GetByID(ctx context.Context, id uint) (*models.Discussion, error) {
	return s.getByIDFn(ctx, id)
}
func (s *discussionRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Discussion, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *discussionRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Discussion, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *discussionRepoStub) CreateMessage(ctx context.Context, m *models.DiscussionMessage) error {
	return s.createMessageFn(ctx, m)
}
func (s *discussionRepoStub) ListMessages(ctx context.Context, discussionID uint) ([]models.DiscussionMessage, error) {
	return s.listMessagesFn(ctx, discussionID)
}

func noopDiscussionRepo() *discussionRepoStub {
	return &discussionRepoStub{
		createFn: func(_ context.Context, d *models.Discussion) error {
			d.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Discussion, error) {
			return &models.Discussion{ID: id}, nil
		},
		listFn:   func(context.Context, int, int) ([]*models.Discussion, error) { return nil, nil },
		searchFn: func(context.Context, string, int, int) ([]*models.Discussion, error) { return nil, nil },
		createMessageFn: func(_ context.Context, m *models.DiscussionMessage) error {
			m.ID = 1
			return nil
		},
		listMessagesFn: func(context.Context, uint) ([]models.DiscussionMessage, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
	searchFn        func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error {
	return s.updateFn(ctx, u)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "someone", ProfilePic: "default.jpg"}, nil
		},
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchFn:        func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
	}
}
