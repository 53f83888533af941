package db

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:db-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := Open(dsn, logger.Default.LogMode(logger.Silent))
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

func TestBeforeCreateAssignsUUID(t *testing.T) {
	gdb := openTestDB(t)

	gallery := Gallery{Title: "Streets"}
	if err := gdb.Create(&gallery).Error; err != nil {
		t.Fatalf("create gallery: %v", err)
	}
	if len(gallery.ID) != 36 {
		t.Fatalf("expected uuid id, got %q", gallery.ID)
	}

	preset := Blog{ID: "fixed", Title: "t", Content: "c"}
	if err := gdb.Create(&preset).Error; err != nil {
		t.Fatalf("create blog: %v", err)
	}
	if preset.ID != "fixed" {
		t.Fatalf("preset id must be kept, got %q", preset.ID)
	}
}

func TestListOrderPutsUnsortedLast(t *testing.T) {
	gdb := openTestDB(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	one, zero := 1, 0

	rows := []Gallery{
		{ID: "unsorted-old", Title: "a", CreatedAt: base},
		{ID: "second", Title: "b", SortOrder: &one, CreatedAt: base.Add(time.Hour)},
		{ID: "first", Title: "c", SortOrder: &zero, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "unsorted-new", Title: "d", CreatedAt: base.Add(3 * time.Hour)},
	}
	if err := gdb.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	var got []Gallery
	if err := gdb.Order(ListOrder).Find(&got).Error; err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"first", "second", "unsorted-old", "unsorted-new"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestDeleteGalleryCascadesImages(t *testing.T) {
	gdb := openTestDB(t)

	gallery := Gallery{Title: "Portraits", Images: []Image{
		{Filename: "a.jpg", Path: "/galleries/p/a.jpg"},
		{Filename: "b.jpg", Path: "/galleries/p/b.jpg", Order: 1},
	}}
	if err := gdb.Create(&gallery).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := gdb.Delete(&Gallery{}, "id = ?", gallery.ID).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	if err := gdb.Model(&Image{}).Where("gallery_id = ?", gallery.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected images to be removed with the gallery, %d left", count)
	}
}

func TestImagePathIsUnique(t *testing.T) {
	gdb := openTestDB(t)
	gallery := Gallery{Title: "x"}
	if err := gdb.Create(&gallery).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	first := Image{Filename: "a.jpg", Path: "/galleries/x/a.jpg", GalleryID: gallery.ID}
	if err := gdb.Create(&first).Error; err != nil {
		t.Fatalf("create image: %v", err)
	}
	dup := Image{Filename: "a.jpg", Path: "/galleries/x/a.jpg", GalleryID: gallery.ID}
	if err := gdb.Create(&dup).Error; err == nil {
		t.Fatalf("expected unique path violation")
	}
}

func TestInitCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "portfolio.db")

	if err := Init(path); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("expected parent directory: %v", err)
	}
	if !DB.Migrator().HasTable(&Settings{}) {
		t.Fatalf("expected settings table")
	}
}
