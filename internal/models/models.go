// internal/models/models.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Category groups posts for prompt context and organization
type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(100);unique;not null;index"`
	Description string `gorm:"type:text"`
	// Relationships
	Posts []Post `gorm:"many2many:post_categories;"`
}

// Post represents a generated blog post
type Post struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title           string         `gorm:"type:text;not null"`
	Content         string         `gorm:"type:text"`
	Status          string         `gorm:"type:varchar(50);not null;default:'draft';index"` // draft, published
	Model           string         `gorm:"type:varchar(100);index"`
	MetaFields      datatypes.JSON `gorm:"type:jsonb"`
	FeaturedImageID *uuid.UUID     `gorm:"type:uuid;index"`
	FeaturedImage   *Attachment    `gorm:"foreignKey:FeaturedImageID"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
	// Relationships
	Categories []Category `gorm:"many2many:post_categories;"`
}

// Attachment represents a stored media file, usually a featured image
type Attachment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	URL       string    `gorm:"type:varchar(2048);not null"`
	MimeType  string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// Setting is one mutable configuration entry, keyed by name
type Setting struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Key       string    `gorm:"type:varchar(100);unique;not null;index"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// GenerationLog records one pipeline run for auditing
type GenerationLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostID    *uuid.UUID     `gorm:"type:uuid;index"`
	Post      *Post          `gorm:"foreignKey:PostID"`
	Model     string         `gorm:"type:varchar(100);index"`
	Status    string         `gorm:"type:varchar(50);not null;index"` // success, failed
	Error     string         `gorm:"type:text"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}
