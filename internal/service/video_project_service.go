package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/video"
	"gorm.io/gorm"
)

var (
	ErrVideoProjectNotFound = errors.New("video project not found")
	ErrVideoTitleRequired   = errors.New("video title is required")
	ErrVideoURLRequired     = errors.New("video url is required")
	ErrVideoURLInvalid      = errors.New("video url is not a supported video link")
)

// VideoProjectService handles video project CRUD and ordering.
type VideoProjectService struct {
	db    *gorm.DB
	guard *ordering.Guard
}

// VideoProjectInput is accepted on create.
type VideoProjectInput struct {
	Title        string
	Description  *string
	VideoURL     string
	ThumbnailURL *string
}

// VideoProjectUpdate carries the fields a partial update sets. Nil means
// unchanged.
type VideoProjectUpdate struct {
	Title        *string
	Description  *string
	VideoURL     *string
	ThumbnailURL *string
}

// VideoProjectView is a project with its resolved playback details.
type VideoProjectView struct {
	db.VideoProject
	Service          video.Service `json:"service"`
	EmbedURL         *string       `json:"embedUrl"`
	DisplayThumbnail *string       `json:"displayThumbnail"`
}

// NewVideoProjectService creates a VideoProjectService.
func NewVideoProjectService(gdb *gorm.DB, guard *ordering.Guard) *VideoProjectService {
	if guard == nil {
		guard = ordering.NewGuard()
	}
	return &VideoProjectService{db: gdb, guard: guard}
}

// List returns every project in display order.
func (s *VideoProjectService) List(ctx context.Context) ([]db.VideoProject, error) {
	var projects []db.VideoProject
	if err := s.db.WithContext(ctx).Order(db.ListOrder).Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list video projects: %w", err)
	}
	return projects, nil
}

// Get fetches one project.
func (s *VideoProjectService) Get(ctx context.Context, id string) (*db.VideoProject, error) {
	var project db.VideoProject
	if err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Create appends a project at the end of the list.
func (s *VideoProjectService) Create(ctx context.Context, input VideoProjectInput) (*db.VideoProject, error) {
	if err := validateVideoProjectInput(input); err != nil {
		return nil, err
	}

	project := db.VideoProject{
		Title:        strings.TrimSpace(input.Title),
		Description:  trimmedOrNil(input.Description),
		VideoURL:     strings.TrimSpace(input.VideoURL),
		ThumbnailURL: trimmedOrNil(input.ThumbnailURL),
	}

	err := s.guard.Do(ctx, ordering.VideoProjectsKey, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			order, err := nextSortOrder(tx, &db.VideoProject{})
			if err != nil {
				return err
			}
			project.SortOrder = &order
			return tx.Create(&project).Error
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create video project: %w", err)
	}
	return &project, nil
}

// Update changes the fields that are set in input and leaves the rest as
// stored. An empty description or thumbnail clears it.
func (s *VideoProjectService) Update(ctx context.Context, id string, input VideoProjectUpdate) (*db.VideoProject, error) {
	if err := validateVideoProjectUpdate(input); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if input.Title != nil {
		changes["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		changes["description"] = trimmedOrNil(input.Description)
	}
	if input.VideoURL != nil {
		changes["video_url"] = strings.TrimSpace(*input.VideoURL)
	}
	if input.ThumbnailURL != nil {
		changes["thumbnail_url"] = trimmedOrNil(input.ThumbnailURL)
	}

	var updated *db.VideoProject
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project db.VideoProject
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVideoProjectNotFound
			}
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(&db.VideoProject{}).Where("id = ?", id).Updates(changes).Error; err != nil {
				return err
			}
		}
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			return err
		}
		updated = &project
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVideoProjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update video project: %w", err)
	}
	return updated, nil
}

// Delete removes a project.
func (s *VideoProjectService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&db.VideoProject{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVideoProjectNotFound
	}
	return nil
}

// Reorder persists ids as the new project order.
func (s *VideoProjectService) Reorder(ctx context.Context, ids []string) error {
	return s.guard.Do(ctx, ordering.VideoProjectsKey, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			stored, err := orderedIDs(tx, &db.VideoProject{})
			if err != nil {
				return err
			}
			merged, err := mergeOrder(stored, ids)
			if err != nil {
				return err
			}
			return writeSortOrder(tx, &db.VideoProject{}, merged)
		})
	})
}

// ViewOf resolves how a project plays and which thumbnail it shows.
func ViewOf(project db.VideoProject) VideoProjectView {
	parsed := video.Parse(project.VideoURL)
	view := VideoProjectView{VideoProject: project, Service: parsed.Service}

	if embed, ok := video.EmbedURL(parsed); ok {
		view.EmbedURL = &embed
	}
	stored := ""
	if project.ThumbnailURL != nil {
		stored = *project.ThumbnailURL
	}
	if thumb, ok := video.DisplayThumbnail(stored, project.VideoURL); ok {
		view.DisplayThumbnail = &thumb
	}
	return view
}

func validateVideoProjectInput(input VideoProjectInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrVideoTitleRequired
	}
	return validateVideoURL(input.VideoURL)
}

func validateVideoProjectUpdate(input VideoProjectUpdate) error {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return ErrVideoTitleRequired
	}
	if input.VideoURL != nil {
		return validateVideoURL(*input.VideoURL)
	}
	return nil
}

func validateVideoURL(rawURL string) error {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return ErrVideoURLRequired
	}
	if !video.IsValid(raw) {
		return fmt.Errorf("%w: %s", ErrVideoURLInvalid, raw)
	}
	return nil
}
