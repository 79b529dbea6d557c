package repository

import (
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/phalkmin/WP-AutoInsight/internal/repository/cache"
)

// Factory manages all repositories
type Factory struct {
	PostRepository     PostRepository
	CategoryRepository CategoryRepository
	SettingRepository  SettingRepository
	LogRepository      LogRepository
	CacheRepository    *cache.Repository
}

// NewRepositoryFactory creates a repository factory with all repositories
func NewRepositoryFactory(db *gorm.DB, redisClient *redis.Client) *Factory {
	cacheRepo := cache.NewRepository(redisClient)

	return &Factory{
		PostRepository:     NewPostRepository(db, cacheRepo),
		CategoryRepository: NewCategoryRepository(db, cacheRepo),
		SettingRepository:  NewSettingRepository(db, cacheRepo),
		LogRepository:      NewLogRepository(db, cacheRepo),
		CacheRepository:    cacheRepo,
	}
}
