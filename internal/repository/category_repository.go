package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/phalkmin/WP-AutoInsight/internal/models"
	"github.com/phalkmin/WP-AutoInsight/internal/repository/cache"
)

// CategoryRepository defines operations for the Category model
type CategoryRepository interface {
	Repository
	FindAll() ([]*models.Category, error)
	CategoryNameByID(id uint) (string, bool)
	FindOrCreateByName(name string) (*models.Category, error)
}

// categoryRepository implements CategoryRepository
type categoryRepository struct {
	*BaseRepository
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB, cacheRepo *cache.Repository) CategoryRepository {
	return &categoryRepository{
		BaseRepository: NewBaseRepository(db, cacheRepo),
	}
}

// FindAll retrieves all categories ordered by name
func (r *categoryRepository) FindAll() ([]*models.Category, error) {
	var categories []*models.Category
	if err := r.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryNameByID resolves a category name. The second return is false
// when the category does not exist.
func (r *categoryRepository) CategoryNameByID(id uint) (string, bool) {
	var category models.Category
	if err := r.DB.First(&category, id).Error; err != nil {
		return "", false
	}
	return category.Name, true
}

// FindOrCreateByName returns the category with the given name, creating it
// if necessary.
func (r *categoryRepository) FindOrCreateByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.DB.Where("name = ?", name).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category = models.Category{Name: name}
	if err := r.DB.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
