// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/imaneboulahya/Miso/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumArticles int
	ShouldClean bool
	// SkipBcrypt stores a plaintext password to speed up large dev runs.
	SkipBcrypt bool
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Every seeded account uses
// the password "password123". Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildArticle constructs an article for the given author without persisting
// it, so callers can batch inserts.
func (f *Factory) BuildArticle(author *models.User, overrides ...func(*models.Article)) *models.Article {
	content := gofakeit.Paragraph(3, 4, 12, "\n\n")
	article := &models.Article{
		Title:    strings.TrimSuffix(gofakeit.Sentence(6), "."),
		Content:  content,
		Category: models.Categories[f.rnd.Intn(len(models.Categories))],
		AuthorID: author.ID,
	}
	if len(content) > 300 {
		article.Excerpt = content[:300]
	} else {
		article.Excerpt = content
	}

	// realistic created_at spread over the last three months
	daysBack := f.rnd.Intn(90)
	hoursBack := f.rnd.Intn(24)
	article.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(article)
	}
	return article
}

// CreateArticlesBatch persists multiple articles in a single DB call.
func (f *Factory) CreateArticlesBatch(articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	return f.db.Create(&articles).Error
}

// CreateComment persists a generated comment from user on article.
func (f *Factory) CreateComment(user *models.User, article *models.Article) (*models.Comment, error) {
	comment := &models.Comment{
		Text:      gofakeit.Sentence(f.rnd.Intn(12) + 3),
		AuthorID:  user.ID,
		ArticleID: article.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike records a like from user on article, ignoring duplicates.
func (f *Factory) CreateLike(user *models.User, article *models.Article) error {
	like := &models.Like{UserID: user.ID, ArticleID: article.ID}
	err := f.db.Create(like).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

// CreateDiscussion persists a discussion thread started by user.
func (f *Factory) CreateDiscussion(user *models.User, overrides ...func(*models.Discussion)) (*models.Discussion, error) {
	discussion := &models.Discussion{
		Title:       strings.TrimSuffix(gofakeit.Question(), "?"),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		AuthorID:    user.ID,
	}
	for _, override := range overrides {
		override(discussion)
	}
	if err := f.db.Create(discussion).Error; err != nil {
		return nil, err
	}
	return discussion, nil
}

// CreateDiscussionMessage persists a message from user in the thread.
func (f *Factory) CreateDiscussionMessage(user *models.User, discussion *models.Discussion) (*models.DiscussionMessage, error) {
	message := &models.DiscussionMessage{
		Text:         gofakeit.Sentence(f.rnd.Intn(15) + 2),
		AuthorID:     user.ID,
		DiscussionID: discussion.ID,
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
