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
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrImageNotFound = errors.New("image not found")
	ErrNoFiles       = errors.New("no files were uploaded")
)

// Upload is one file of a multipart upload.
type Upload struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// UploadError reports the file that stopped an upload. Images stored before
// it are kept.
type UploadError struct {
	Name  string
	Saved []db.Image
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ImageService manages images inside galleries.
type ImageService struct {
	db    *gorm.DB
	files ImageFiles
	guard *ordering.Guard
}

// NewImageService creates an ImageService.
func NewImageService(gdb *gorm.DB, files ImageFiles, guard *ordering.Guard) *ImageService {
	if guard == nil {
		guard = ordering.NewGuard()
	}
	return &ImageService{db: gdb, files: files, guard: guard}
}

// Upload stores files in order and appends them after the gallery's existing
// images. When the gallery has no cover the first stored file becomes it.
// On failure the returned error is an *UploadError carrying what was saved.
func (s *ImageService) Upload(ctx context.Context, galleryID string, uploads []Upload) ([]db.Image, error) {
	if len(uploads) == 0 {
		return nil, ErrNoFiles
	}

	var saved []db.Image
	err := s.guard.Do(ctx, ordering.ImagesKey(galleryID), func(ctx context.Context) error {
		var gallery db.Gallery
		if err := s.db.WithContext(ctx).First(&gallery, "id = ?", galleryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGalleryNotFound
			}
			return err
		}

		next, err := s.nextImageOrder(ctx, galleryID)
		if err != nil {
			return err
		}

		var failure *UploadError
		for _, upload := range uploads {
			image, err := s.store(ctx, galleryID, next, upload)
			if err != nil {
				failure = &UploadError{Name: upload.Name, Err: err}
				break
			}
			saved = append(saved, image)
			next++
		}

		if err := s.applyUploadCover(ctx, gallery, saved); err != nil {
			return err
		}
		if failure != nil {
			failure.Saved = saved
			return failure
		}
		return nil
	})
	if err != nil {
		return saved, err
	}
	return saved, nil
}

func (s *ImageService) store(ctx context.Context, galleryID string, order int, upload Upload) (db.Image, error) {
	reader, err := upload.Open()
	if err != nil {
		return db.Image{}, err
	}
	defer reader.Close()

	stored, err := s.files.Save(ctx, galleryID, upload.Name, reader)
	if err != nil {
		return db.Image{}, err
	}

	image := db.Image{
		Filename:  stored.Filename,
		Path:      stored.Path,
		Order:     order,
		Width:     stored.Width,
		Height:    stored.Height,
		GalleryID: galleryID,
	}
	if err := s.db.WithContext(ctx).Create(&image).Error; err != nil {
		if removeErr := s.files.Delete(ctx, stored.Path); removeErr != nil {
			logger.Log.WithFields(logrus.Fields{"path": stored.Path, "error": removeErr}).Warn("orphaned upload")
		}
		return db.Image{}, err
	}
	return image, nil
}

func (s *ImageService) applyUploadCover(ctx context.Context, gallery db.Gallery, saved []db.Image) error {
	current := ""
	if gallery.CoverImage != nil {
		current = *gallery.CoverImage
	}
	cover := ordering.CoverAfterUpload(current, imageRefs(saved))
	if cover == current {
		return nil
	}
	return s.db.WithContext(ctx).Model(&db.Gallery{}).Where("id = ?", gallery.ID).Update("cover_image", cover).Error
}

func (s *ImageService) nextImageOrder(ctx context.Context, galleryID string) (int, error) {
	var maxOrder int
	err := s.db.WithContext(ctx).Model(&db.Image{}).
		Where("gallery_id = ?", galleryID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, fmt.Errorf("resolve image order: %w", err)
	}
	return maxOrder + 1, nil
}

// Delete removes an image, closes the gap in the order and moves the cover to
// the first remaining image when the deleted one was the cover.
func (s *ImageService) Delete(ctx context.Context, galleryID, imageID string) error {
	var removed db.Image
	err := s.guard.Do(ctx, ordering.ImagesKey(galleryID), func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var gallery db.Gallery
			err := tx.Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order(db.ImageOrder) }).
				First(&gallery, "id = ?", galleryID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrGalleryNotFound
				}
				return err
			}

			remaining := make([]db.Image, 0, len(gallery.Images))
			found := false
			for _, img := range gallery.Images {
				if img.ID == imageID {
					removed = img
					found = true
					continue
				}
				remaining = append(remaining, img)
			}
			if !found {
				return ErrImageNotFound
			}

			if err := tx.Delete(&db.Image{}, "id = ?", imageID).Error; err != nil {
				return err
			}
			if err := writeImageOrder(tx, galleryID, imageIDs(remaining)); err != nil {
				return err
			}

			current := ""
			if gallery.CoverImage != nil {
				current = *gallery.CoverImage
			}
			cover := ordering.CoverAfterDelete(imageRefs(remaining), current, removed.Path)
			if cover == current {
				return nil
			}
			var value interface{}
			if cover != "" {
				value = cover
			}
			return tx.Model(&db.Gallery{}).Where("id = ?", galleryID).Update("cover_image", value).Error
		})
	})
	if err != nil {
		return err
	}

	if err := s.files.Delete(ctx, removed.Path); err != nil {
		logger.Log.WithFields(logrus.Fields{"path": removed.Path, "error": err}).Warn("image file left on disk")
	}
	return nil
}

// UpdateCaption sets or clears a caption.
func (s *ImageService) UpdateCaption(ctx context.Context, imageID string, caption *string) (*db.Image, error) {
	var image db.Image
	tx := s.db.WithContext(ctx)
	if err := tx.First(&image, "id = ?", imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}

	value := trimmedOrNil(caption)
	if err := tx.Model(&image).Update("caption", value).Error; err != nil {
		return nil, fmt.Errorf("update caption: %w", err)
	}
	image.Caption = value
	return &image, nil
}

// Reorder persists ids as the order of a gallery's images. ids must list
// every image of the gallery exactly once.
func (s *ImageService) Reorder(ctx context.Context, galleryID string, ids []string) error {
	return s.guard.Do(ctx, ordering.ImagesKey(galleryID), func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			current, err := s.imagesOf(tx, galleryID)
			if err != nil {
				return err
			}
			if !ordering.SameMembers(imageIDs(current), ids) {
				return ErrImageOrderMismatch
			}
			return writeImageOrder(tx, galleryID, ids)
		})
	})
}

// Move drops draggedID in front of targetID. Drags that started in another
// gallery are ignored and reported as false.
func (s *ImageService) Move(ctx context.Context, galleryID, sourceGalleryID, draggedID, targetID string) (bool, error) {
	moved := false
	err := s.guard.Do(ctx, ordering.ImagesKey(galleryID), func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			current, err := s.imagesOf(tx, galleryID)
			if err != nil {
				return err
			}
			next, ok := ordering.MoveImageWithin(galleryID, strings.TrimSpace(sourceGalleryID), imageRefs(current), draggedID, targetID)
			if !ok {
				return nil
			}
			moved = true
			return writeImageOrder(tx, galleryID, ordering.ImageIDs(next))
		})
	})
	return moved, err
}

func (s *ImageService) imagesOf(tx *gorm.DB, galleryID string) ([]db.Image, error) {
	var count int64
	if err := tx.Model(&db.Gallery{}).Where("id = ?", galleryID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrGalleryNotFound
	}

	var images []db.Image
	if err := tx.Where("gallery_id = ?", galleryID).Order(db.ImageOrder).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}
