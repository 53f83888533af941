package main

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:seed-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(dsn, logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSeedCreatesVariedDemoContent(t *testing.T) {
	gdb := setupSeedTestDB(t)
	files, err := storage.NewImageStore(t.TempDir(), "/galleries", 8<<20)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	summary, err := seed(context.Background(), gdb, files, quietLogger())
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if summary.Galleries != len(demoGalleries) || summary.Videos != len(demoVideos) || summary.Blogs != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	var galleries []db.Gallery
	if err := gdb.Preload("Images").Order(db.ListOrder).Find(&galleries).Error; err != nil {
		t.Fatalf("failed to list galleries: %v", err)
	}

	hasLandscape, hasPortrait, hasSquare := false, false, false
	for i, g := range galleries {
		if g.Title != demoGalleries[i].title {
			t.Fatalf("gallery %d: expected %q, got %q", i, demoGalleries[i].title, g.Title)
		}
		if g.CoverImage == nil || len(g.Images) == 0 {
			t.Fatalf("gallery %q should have images and a cover", g.Title)
		}
		for _, img := range g.Images {
			ratio := float64(img.Width) / float64(img.Height)
			switch {
			case ratio > 1.15:
				hasLandscape = true
			case ratio < 0.9:
				hasPortrait = true
			default:
				hasSquare = true
			}
		}
	}
	if !hasLandscape || !hasPortrait || !hasSquare {
		t.Fatalf("expected landscape, portrait, and square aspect ratios to exist")
	}
}

func TestSeedSkipsPopulatedDatabase(t *testing.T) {
	gdb := setupSeedTestDB(t)
	if err := gdb.Create(&db.Gallery{Title: "Existing"}).Error; err != nil {
		t.Fatalf("failed to create gallery: %v", err)
	}
	files, err := storage.NewImageStore(t.TempDir(), "/galleries", 8<<20)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	summary, err := seed(context.Background(), gdb, files, quietLogger())
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !summary.Skipped {
		t.Fatalf("expected seed to skip a populated database")
	}

	var count int64
	gdb.Model(&db.VideoProject{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no videos, got %d", count)
	}
}
