package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/logger"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrGalleryNotFound      = errors.New("gallery not found")
	ErrGalleryTitleRequired = errors.New("gallery title is required")
	ErrCoverNotInGallery    = errors.New("cover image does not belong to the gallery")
	ErrImageOrderMismatch   = errors.New("image order must list every image of the gallery once")
)

// ImageFiles stores the bytes behind gallery images.
type ImageFiles interface {
	Save(ctx context.Context, galleryID, originalName string, r io.Reader) (storage.StoredImage, error)
	Delete(ctx context.Context, urlPath string) error
	RemoveGallery(ctx context.Context, galleryID string) error
}

// GalleryService handles gallery CRUD and gallery ordering.
type GalleryService struct {
	db    *gorm.DB
	files ImageFiles
	guard *ordering.Guard
}

// GalleryInput is accepted on create.
type GalleryInput struct {
	Title        string
	Description  *string
	Downloadable bool
}

// GalleryUpdate is accepted on update. Nil fields are left untouched. An
// empty CoverImage clears the cover.
type GalleryUpdate struct {
	Title        *string
	Description  *string
	Downloadable *bool
	CoverImage   *string
	ImageOrder   []string
}

// NewGalleryService creates a GalleryService. guard may be shared with other
// services writing the same orderings.
func NewGalleryService(gdb *gorm.DB, files ImageFiles, guard *ordering.Guard) *GalleryService {
	if guard == nil {
		guard = ordering.NewGuard()
	}
	return &GalleryService{db: gdb, files: files, guard: guard}
}

// List returns every gallery with its images, in display order.
func (s *GalleryService) List(ctx context.Context) ([]db.Gallery, error) {
	var galleries []db.Gallery
	err := s.db.WithContext(ctx).
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order(db.ImageOrder) }).
		Order(db.ListOrder).
		Find(&galleries).Error
	if err != nil {
		return nil, fmt.Errorf("list galleries: %w", err)
	}
	return galleries, nil
}

// Get fetches one gallery with its images.
func (s *GalleryService) Get(ctx context.Context, id string) (*db.Gallery, error) {
	return s.get(s.db.WithContext(ctx), id)
}

func (s *GalleryService) get(tx *gorm.DB, id string) (*db.Gallery, error) {
	var gallery db.Gallery
	err := tx.Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order(db.ImageOrder) }).
		First(&gallery, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}
	return &gallery, nil
}

// Create appends a new gallery at the end of the list.
func (s *GalleryService) Create(ctx context.Context, input GalleryInput) (*db.Gallery, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrGalleryTitleRequired
	}

	gallery := db.Gallery{
		Title:        title,
		Description:  trimmedOrNil(input.Description),
		Downloadable: input.Downloadable,
		Images:       []db.Image{},
	}

	err := s.guard.Do(ctx, ordering.GalleriesKey, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			order, err := nextSortOrder(tx, &db.Gallery{})
			if err != nil {
				return err
			}
			gallery.SortOrder = &order
			return tx.Create(&gallery).Error
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create gallery: %w", err)
	}
	return &gallery, nil
}

// Update changes metadata, the cover and optionally the image order in one
// transaction.
func (s *GalleryService) Update(ctx context.Context, id string, input GalleryUpdate) (*db.Gallery, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrGalleryTitleRequired
	}

	var updated *db.Gallery
	err := s.guard.Do(ctx, ordering.ImagesKey(id), func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			gallery, err := s.get(tx, id)
			if err != nil {
				return err
			}

			changes := map[string]interface{}{}
			if input.Title != nil {
				changes["title"] = strings.TrimSpace(*input.Title)
			}
			if input.Description != nil {
				changes["description"] = trimmedOrNil(input.Description)
			}
			if input.Downloadable != nil {
				changes["downloadable"] = *input.Downloadable
			}
			if input.CoverImage != nil {
				cover := strings.TrimSpace(*input.CoverImage)
				if cover == "" {
					changes["cover_image"] = nil
				} else {
					if _, ok := findImageByPath(gallery.Images, cover); !ok {
						return ErrCoverNotInGallery
					}
					changes["cover_image"] = cover
				}
			}
			if len(changes) > 0 {
				if err := tx.Model(&db.Gallery{}).Where("id = ?", id).Updates(changes).Error; err != nil {
					return err
				}
			}

			if input.ImageOrder != nil {
				if !ordering.SameMembers(imageIDs(gallery.Images), input.ImageOrder) {
					return ErrImageOrderMismatch
				}
				if err := writeImageOrder(tx, id, input.ImageOrder); err != nil {
					return err
				}
			}

			updated, err = s.get(tx, id)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a gallery, its images and their files.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	err := s.guard.Do(ctx, ordering.GalleriesKey, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Where("id = ?", id).Delete(&db.Gallery{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrGalleryNotFound
			}
			return tx.Where("gallery_id = ?", id).Delete(&db.Image{}).Error
		})
	})
	if err != nil {
		return err
	}

	if s.files != nil {
		if err := s.files.RemoveGallery(ctx, id); err != nil {
			logger.Log.WithFields(logrus.Fields{"gallery": id, "error": err}).Warn("gallery files left on disk")
		}
	}
	return nil
}

// Reorder persists ids as the new gallery order. Galleries missing from ids
// keep their relative order after the listed ones.
func (s *GalleryService) Reorder(ctx context.Context, ids []string) error {
	return s.guard.Do(ctx, ordering.GalleriesKey, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			stored, err := orderedIDs(tx, &db.Gallery{})
			if err != nil {
				return err
			}
			merged, err := mergeOrder(stored, ids)
			if err != nil {
				return err
			}
			return writeSortOrder(tx, &db.Gallery{}, merged)
		})
	})
}

// Move swaps a gallery with its neighbour. It reports false when the gallery
// already sits at that edge of the list.
func (s *GalleryService) Move(ctx context.Context, id string, dir ordering.Direction) (bool, error) {
	moved := false
	err := s.guard.Do(ctx, ordering.GalleriesKey, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			stored, err := orderedIDs(tx, &db.Gallery{})
			if err != nil {
				return err
			}
			index := ordering.IndexOf(stored, id)
			if index < 0 {
				return ErrGalleryNotFound
			}
			if !ordering.CanMove(len(stored), index, dir) {
				return nil
			}
			moved = true
			return writeSortOrder(tx, &db.Gallery{}, ordering.MoveGallery(stored, index, dir))
		})
	})
	return moved, err
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func findImageByPath(images []db.Image, path string) (db.Image, bool) {
	for _, img := range images {
		if img.Path == path {
			return img, true
		}
	}
	return db.Image{}, false
}

func imageIDs(images []db.Image) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	return ids
}

func imageRefs(images []db.Image) []ordering.ImageRef {
	refs := make([]ordering.ImageRef, 0, len(images))
	for _, img := range images {
		refs = append(refs, ordering.ImageRef{ID: img.ID, Path: img.Path, GalleryID: img.GalleryID})
	}
	return refs
}

func writeImageOrder(tx *gorm.DB, galleryID string, ids []string) error {
	for id, position := range ordering.DenseOrder(ids) {
		err := tx.Model(&db.Image{}).
			Where("id = ? AND gallery_id = ?", id, galleryID).
			Update("position", position).Error
		if err != nil {
			return fmt.Errorf("write image order: %w", err)
		}
	}
	return nil
}
