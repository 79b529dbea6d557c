package repository

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/phalkmin/WP-AutoInsight/internal/models"
	"github.com/phalkmin/WP-AutoInsight/internal/repository/cache"
)

// SettingRepository reads and writes mutable configuration. Its read side
// satisfies the generation service's settings interface.
type SettingRepository interface {
	Get(key, fallback string) string
	GetBool(key string, fallback bool) bool
	GetInt(key string, fallback int) int
	Set(key, value string) error
	All() (map[string]string, error)
}

// settingRepository implements SettingRepository
type settingRepository struct {
	*BaseRepository
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB, cacheRepo *cache.Repository) SettingRepository {
	return &settingRepository{
		BaseRepository: NewBaseRepository(db, cacheRepo),
	}
}

// Get returns the stored value for key, or fallback when unset
func (r *settingRepository) Get(key, fallback string) string {
	var setting models.Setting
	if err := r.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		return fallback
	}
	return setting.Value
}

// GetBool returns the stored value interpreted as a boolean
func (r *settingRepository) GetBool(key string, fallback bool) bool {
	value := r.Get(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// GetInt returns the stored value interpreted as an integer
func (r *settingRepository) GetInt(key string, fallback int) int {
	value := r.Get(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// Set stores a value under key, inserting or updating as needed
func (r *settingRepository) Set(key, value string) error {
	var setting models.Setting
	err := r.DB.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(&models.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}

	setting.Value = value
	return r.DB.Save(&setting).Error
}

// All returns every stored setting as a key/value map
func (r *settingRepository) All() (map[string]string, error) {
	var settings []models.Setting
	if err := r.DB.Find(&settings).Error; err != nil {
		return nil, err
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return out, nil
}
