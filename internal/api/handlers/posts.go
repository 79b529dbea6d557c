package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/phalkmin/WP-AutoInsight/internal/config"
	"github.com/phalkmin/WP-AutoInsight/internal/repository"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/prompts"
)

// PostHandler handles post generation and retrieval requests
type PostHandler struct {
	Service  *generation.Service
	Posts    repository.PostRepository
	Settings repository.SettingRepository
	Logs     repository.LogRepository
	Config   *config.Config
	Logger   generation.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(service *generation.Service, repos *repository.Factory, cfg *config.Config, logger generation.Logger) *PostHandler {
	return &PostHandler{
		Service:  service,
		Posts:    repos.PostRepository,
		Settings: repos.SettingRepository,
		Logs:     repos.LogRepository,
		Config:   cfg,
		Logger:   logger,
	}
}

// GeneratePostRequest represents a request to generate a post
type GeneratePostRequest struct {
	Keywords    []string `json:"keywords"`
	Tone        string   `json:"tone"`
	CustomTone  string   `json:"custom_tone"`
	CategoryIDs []uint   `json:"category_ids"`
	CharLimit   int      `json:"char_limit"`
	Model       string   `json:"model"`
	GenerateSEO bool     `json:"generate_seo"`
	Scheduled   bool     `json:"scheduled"`
}

// GeneratePost runs the generation pipeline and returns the created draft
func (h *PostHandler) GeneratePost(c *fiber.Ctx) error {
	req := new(GeneratePostRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
	}

	if req.CharLimit <= 0 {
		req.CharLimit = h.Settings.GetInt(generation.SettingCharLimit, 200)
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.Config.GenerationTimeout)
	defer cancel()

	result, err := h.Service.GeneratePost(ctx, generation.Request{
		Keywords:    req.Keywords,
		Tone:        prompts.Tone(req.Tone),
		CustomTone:  req.CustomTone,
		CategoryIDs: req.CategoryIDs,
		CharLimit:   req.CharLimit,
		Model:       req.Model,
		GenerateSEO: req.GenerateSEO,
	})
	if err != nil {
		if logErr := h.Logs.RecordFailure(req.Model, err); logErr != nil {
			h.Logger.Error("failed to record generation failure", "error", logErr)
		}
		if req.Scheduled {
			h.Service.NotifyFailure(err)
		}
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	if logErr := h.Logs.RecordSuccess(result.PostID, result.Model, map[string]interface{}{
		"title":             result.Title,
		"image_url":         result.ImageURL,
		"model_substituted": result.ModelSubstituted,
	}); logErr != nil {
		h.Logger.Error("failed to record generation run", "post_id", result.PostID, "error", logErr)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// ListPosts returns posts with pagination
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	posts, total, err := h.Posts.FindAll(page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch posts: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    posts,
		"total":   total,
		"page":    page,
	})
}

// GetPost returns a single post
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid post ID",
		})
	}

	post, err := h.Posts.FindPost(postID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Post not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    post,
	})
}

// ListRecentRuns returns the latest generation log entries
func (h *PostHandler) ListRecentRuns(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, err := h.Logs.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch generation log: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    logs,
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, generation.ErrConfiguration):
		return fiber.StatusBadRequest
	case errors.Is(err, generation.ErrGeneration):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
