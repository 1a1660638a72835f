package server

import (
	"github.com/imaneboulahya/Miso/internal/models"
	"github.com/imaneboulahya/Miso/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetDiscussions handles GET /api/discussions?q=, newest first.
func (s *Server) GetDiscussions(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	discussions, err := s.discussionService.Browse(c.Context(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"discussions": discussions})
}

// GetDiscussion handles GET /api/discussions/:id with its messages.
func (s *Server) GetDiscussion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	discussion, err := s.discussionService.GetDiscussion(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(discussion)
}

// CreateDiscussion handles POST /api/discussions. Accepts JSON or multipart
// with an optional "profile_pic" file.
func (s *Server) CreateDiscussion(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	pic, err := s.saveUpload(c, "profile_pic")
	if err != nil {
		return respondError(c, err)
	}

	discussion, err := s.discussionService.CreateDiscussion(c.Context(), service.CreateDiscussionInput{
		AuthorID:    currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		ProfilePic:  pic,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(discussion)
}

// GetDiscussionMessages handles GET /api/discussions/:id/messages, oldest first.
func (s *Server) GetDiscussionMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	messages, err := s.discussionService.ListMessages(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// PostDiscussionMessage handles POST /api/discussions/:id/messages.
func (s *Server) PostDiscussionMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.discussionService.PostMessage(c.Context(), service.PostMessageInput{
		AuthorID:     currentUserID(c),
		DiscussionID: id,
		Text:         req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}
