package seed

import (
	"fmt"
	"log"

	"github.com/imaneboulahya/Miso/internal/models"

	"gorm.io/gorm"
)

// Seed populates the database with test data: users, articles spread over
// every category, comments, likes, and a handful of discussion threads.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d articles...", opts.NumUsers, opts.NumArticles)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clean existing data: %w", err)
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))
	if len(users) == 0 {
		return nil
	}

	articles := make([]*models.Article, 0, opts.NumArticles)
	for i := 0; i < opts.NumArticles; i++ {
		author := users[f.rnd.Intn(len(users))]
		article := f.BuildArticle(author)
		// guarantee every category has some coverage
		if i < len(models.Categories) {
			article.Category = models.Categories[i]
		}
		articles = append(articles, article)
	}
	if err := f.CreateArticlesBatch(articles); err != nil {
		return fmt.Errorf("create articles: %w", err)
	}
	log.Printf("created %d articles", len(articles))

	comments, likes := 0, 0
	for _, article := range articles {
		for i := 0; i < f.rnd.Intn(4); i++ {
			commenter := users[f.rnd.Intn(len(users))]
			if _, err := f.CreateComment(commenter, article); err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			comments++
		}
		for i := 0; i < f.rnd.Intn(6); i++ {
			liker := users[f.rnd.Intn(len(users))]
			if err := f.CreateLike(liker, article); err != nil {
				return fmt.Errorf("create like: %w", err)
			}
			likes++
		}
	}
	log.Printf("created %d comments and up to %d likes", comments, likes)

	numDiscussions := opts.NumUsers / 5
	if numDiscussions < 3 {
		numDiscussions = 3
	}
	for i := 0; i < numDiscussions; i++ {
		host := users[f.rnd.Intn(len(users))]
		discussion, err := f.CreateDiscussion(host)
		if err != nil {
			return fmt.Errorf("create discussion: %w", err)
		}
		for j := 0; j < f.rnd.Intn(8)+1; j++ {
			sender := users[f.rnd.Intn(len(users))]
			if _, err := f.CreateDiscussionMessage(sender, discussion); err != nil {
				return fmt.Errorf("create discussion message: %w", err)
			}
		}
	}
	log.Printf("created %d discussions", numDiscussions)

	log.Println("Seeding complete. All test users have the password: password123")
	return nil
}

// clearData removes seedable rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []string{"likes", "comments", "discussion_messages", "discussions", "articles", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
