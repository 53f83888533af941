package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoProject is a titled link to an externally hosted or direct video.
type VideoProject struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description"`
	VideoURL     string    `gorm:"column:video_url;not null" json:"videoUrl"`
	ThumbnailURL *string   `gorm:"column:thumbnail_url" json:"thumbnailUrl"`
	SortOrder    *int      `gorm:"index" json:"sortOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a uuid when none is set.
func (v *VideoProject) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
