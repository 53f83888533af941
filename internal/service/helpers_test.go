package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
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

// memoryFiles is an ImageFiles that keeps nothing but bookkeeping.
type memoryFiles struct {
	mu        sync.Mutex
	count     int
	failOn    string
	deleted   []string
	removed   []string
	saveCalls int
}

func (m *memoryFiles) Save(_ context.Context, galleryID, name string, r io.Reader) (storage.StoredImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if name == m.failOn {
		return storage.StoredImage{}, storage.ErrUnsupportedType
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.StoredImage{}, err
	}
	m.count++
	filename := fmt.Sprintf("%d-%s", m.count, storage.SanitizeFilename(name))
	return storage.StoredImage{
		Filename: filename,
		Path:     "/galleries/" + galleryID + "/" + filename,
		MIME:     "image/png",
		Size:     int64(len(data)),
		Width:    10,
		Height:   5,
	}, nil
}

func (m *memoryFiles) Delete(_ context.Context, urlPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, urlPath)
	return nil
}

func (m *memoryFiles) RemoveGallery(_ context.Context, galleryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, galleryID)
	return nil
}

func uploadOf(name string) Upload {
	return Upload{Name: name, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("bytes of " + name)), nil
	}}
}

func strPtr(value string) *string {
	return &value
}

func mustCreateGallery(t *testing.T, svc *GalleryService, title string) *db.Gallery {
	t.Helper()
	gallery, err := svc.Create(context.Background(), GalleryInput{Title: title})
	if err != nil {
		t.Fatalf("create gallery %q: %v", title, err)
	}
	return gallery
}

func galleryTitles(galleries []db.Gallery) []string {
	titles := make([]string, 0, len(galleries))
	for _, g := range galleries {
		titles = append(titles, g.Title)
	}
	return titles
}

func imageFilenames(images []db.Image) []string {
	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, img.Filename)
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
