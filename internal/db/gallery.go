package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gallery is a titled, ordered collection of images.
type Gallery struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description"`
	CoverImage   *string   `json:"coverImage"`
	Downloadable bool      `gorm:"not null;default:false" json:"downloadable"`
	SortOrder    *int      `gorm:"index" json:"sortOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Images       []Image   `gorm:"constraint:OnDelete:CASCADE" json:"images"`
}

// BeforeCreate assigns a uuid when none is set.
func (g *Gallery) BeforeCreate(*gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// Image is one uploaded file inside a gallery. Order is dense and 0-based
// within the gallery.
type Image struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Filename  string    `gorm:"not null" json:"filename"`
	Path      string    `gorm:"not null;uniqueIndex" json:"path"`
	Caption   *string   `json:"caption"`
	Order     int       `gorm:"column:position;not null;default:0" json:"order"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	GalleryID string    `gorm:"size:36;not null;index" json:"galleryId"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a uuid when none is set.
func (i *Image) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ListOrder sorts entities with an optional sort_order: unset values last,
// creation time breaks ties.
const ListOrder = "sort_order IS NULL, sort_order ASC, created_at ASC"

// ImageOrder sorts images inside a gallery.
const ImageOrder = "position ASC, created_at ASC"
