package repository

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/phalkmin/WP-AutoInsight/internal/models"
	"github.com/phalkmin/WP-AutoInsight/internal/repository/cache"
)

// LogRepository records generation runs for auditing
type LogRepository interface {
	Repository
	RecordSuccess(postID uuid.UUID, model string, details map[string]interface{}) error
	RecordFailure(model string, runErr error) error
	FindRecent(limit int) ([]*models.GenerationLog, error)
}

// logRepository implements LogRepository
type logRepository struct {
	*BaseRepository
}

// NewLogRepository creates a new generation log repository
func NewLogRepository(db *gorm.DB, cacheRepo *cache.Repository) LogRepository {
	return &logRepository{
		BaseRepository: NewBaseRepository(db, cacheRepo),
	}
}

// RecordSuccess logs a completed run
func (r *logRepository) RecordSuccess(postID uuid.UUID, model string, details map[string]interface{}) error {
	entry := models.GenerationLog{
		PostID: &postID,
		Model:  model,
		Status: "success",
	}
	if len(details) > 0 {
		if data, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(data)
		}
	}
	return r.DB.Create(&entry).Error
}

// RecordFailure logs a failed run
func (r *logRepository) RecordFailure(model string, runErr error) error {
	entry := models.GenerationLog{
		Model:  model,
		Status: "failed",
		Error:  runErr.Error(),
	}
	return r.DB.Create(&entry).Error
}

// FindRecent retrieves the latest runs, newest first
func (r *logRepository) FindRecent(limit int) ([]*models.GenerationLog, error) {
	var logs []*models.GenerationLog
	if err := r.DB.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
