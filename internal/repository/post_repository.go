package repository

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/phalkmin/WP-AutoInsight/internal/models"
	"github.com/phalkmin/WP-AutoInsight/internal/repository/cache"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation"
)

// PostRepository defines operations for the Post model
type PostRepository interface {
	Repository
	CreateDraft(draft generation.DraftPost) (uuid.UUID, error)
	FindPost(id uuid.UUID) (*models.Post, error)
	FindAll(page, pageSize int) ([]*models.Post, int64, error)
	AttachFeaturedImage(postID uuid.UUID, imageURL string) (uuid.UUID, error)
	UpdateStatus(postID uuid.UUID, status string) error
}

// postRepository implements PostRepository
type postRepository struct {
	*BaseRepository
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB, cacheRepo *cache.Repository) PostRepository {
	return &postRepository{
		BaseRepository: NewBaseRepository(db, cacheRepo),
	}
}

// CreateDraft persists a generated draft with its category links and meta
// fields in one transaction.
func (r *postRepository) CreateDraft(draft generation.DraftPost) (uuid.UUID, error) {
	post := models.Post{
		Title:   draft.Title,
		Content: draft.Content,
		Status:  "draft",
	}

	if len(draft.MetaFields) > 0 {
		data, err := json.Marshal(draft.MetaFields)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal meta fields: %w", err)
		}
		post.MetaFields = datatypes.JSON(data)
	}

	err := r.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		if len(draft.CategoryIDs) == 0 {
			return nil
		}
		var categories []models.Category
		if err := tx.Where("id IN ?", draft.CategoryIDs).Find(&categories).Error; err != nil {
			return err
		}
		return tx.Model(&post).Association("Categories").Append(&categories)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return post.ID, nil
}

// FindPost finds a post by ID, checking the cache first
func (r *postRepository) FindPost(id uuid.UUID) (*models.Post, error) {
	if r.CacheRepo != nil {
		if cached, err := r.CacheRepo.GetPost(id); err == nil && cached != nil {
			return cached, nil
		}
	}

	var post models.Post
	if err := r.DB.Preload("Categories").Preload("FeaturedImage").First(&post, id).Error; err != nil {
		return nil, err
	}

	if r.CacheRepo != nil {
		go r.CacheRepo.CachePost(&post)
	}
	return &post, nil
}

// FindAll retrieves posts with pagination, newest first
func (r *postRepository) FindAll(page, pageSize int) ([]*models.Post, int64, error) {
	var posts []*models.Post
	var count int64

	if err := r.DB.Model(&models.Post{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.DB.Preload("Categories").
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, count, nil
}

// AttachFeaturedImage records an attachment for the image URL and links it
// to the post as its featured image.
func (r *postRepository) AttachFeaturedImage(postID uuid.UUID, imageURL string) (uuid.UUID, error) {
	attachment := models.Attachment{
		URL:      imageURL,
		MimeType: "image/png",
	}

	err := r.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attachment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update("featured_image_id", attachment.ID).Error
	})
	if err != nil {
		return uuid.Nil, err
	}

	if r.CacheRepo != nil {
		go r.CacheRepo.InvalidatePost(postID)
	}
	return attachment.ID, nil
}

// UpdateStatus changes a post's status
func (r *postRepository) UpdateStatus(postID uuid.UUID, status string) error {
	err := r.DB.Model(&models.Post{}).
		Where("id = ?", postID).
		Update("status", status).Error
	if err != nil {
		return err
	}

	if r.CacheRepo != nil {
		go r.CacheRepo.InvalidatePost(postID)
	}
	return nil
}
