package server

import (
	"github.com/imaneboulahya/Miso/internal/models"
	"github.com/imaneboulahya/Miso/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetArticles handles GET /api/articles, newest first.
func (s *Server) GetArticles(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	articles, err := s.articleService.ListRecent(c.Context(), p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"articles": articles})
}

// GetArticle handles GET /api/articles/:id.
func (s *Server) GetArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	article, err := s.articleService.GetArticle(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// CreateArticle handles POST /api/articles. Accepts JSON or multipart with
// an optional "image" file.
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title" form:"title"`
		Content  string `json:"content" form:"content"`
		Excerpt  string `json:"excerpt" form:"excerpt"`
		Category string `json:"category" form:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	imageURL, err := s.saveUpload(c, "image")
	if err != nil {
		return respondError(c, err)
	}

	article, err := s.articleService.CreateArticle(c.Context(), service.CreateArticleInput{
		AuthorID: currentUserID(c),
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Category: req.Category,
		ImageURL: imageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// DeleteArticle handles DELETE /api/articles/:id.
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.articleService.Delete(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Article deleted"})
}

// ToggleLike handles POST /api/articles/:id/like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, count, err := s.articleService.ToggleLike(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"liked":       liked,
		"likes_count": count,
	})
}

// SearchArticles handles GET /api/articles/search?q=&category=&page=.
func (s *Server) SearchArticles(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	result, err := s.articleService.Search(c.Context(), service.SearchArticlesInput{
		Query:         c.Query("q"),
		Category:      c.Query("category"),
		Page:          page,
		CurrentUserID: currentUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetSuggestedArticles handles GET /api/articles/:id/suggested.
func (s *Server) GetSuggestedArticles(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	articles, err := s.articleService.Suggested(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"articles": articles})
}

// GetCategories handles GET /api/categories, returning each category with
// its article count.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	counts, err := s.articleService.CountByCategory(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	// Stable display order.
	categories := make([]fiber.Map, 0, len(models.Categories))
	for _, category := range models.Categories {
		categories = append(categories, fiber.Map{
			"name":  category,
			"count": counts[category],
		})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetCategoryArticles handles GET /api/categories/:name/articles.
func (s *Server) GetCategoryArticles(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	articles, err := s.articleService.ListByCategory(
		c.Context(), c.Params("name"), p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"articles": articles})
}
