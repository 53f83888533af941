package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsInput is accepted on update.
type SettingsInput struct {
	InstagramURL string
	LinkedinURL  string
	YoutubeURL   string
}

// SettingsService reads and writes the social link settings.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(gdb *gorm.DB) *SettingsService {
	return &SettingsService{db: gdb}
}

// Get returns the stored settings, or empty links when none were saved.
func (s *SettingsService) Get(ctx context.Context) (db.Settings, error) {
	var settings db.Settings
	err := s.db.WithContext(ctx).First(&settings, db.SettingsID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Settings{ID: db.SettingsID}, nil
		}
		return db.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// Update replaces every link. Blank values clear a link.
func (s *SettingsService) Update(ctx context.Context, input SettingsInput) (db.Settings, error) {
	settings := db.Settings{
		ID:           db.SettingsID,
		InstagramURL: strings.TrimSpace(input.InstagramURL),
		LinkedinURL:  strings.TrimSpace(input.LinkedinURL),
		YoutubeURL:   strings.TrimSpace(input.YoutubeURL),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"instagram_url", "linkedin_url", "youtube_url"}),
	}).Create(&settings).Error
	if err != nil {
		return db.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return settings, nil
}
