package ordering

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Gallery is the client-visible view of a gallery and its ordered images.
type Gallery struct {
	ID           string
	Title        string
	CoverImage   string
	Downloadable bool
	Images       []ImageRef
}

// Store is the authoritative side of the board.
type Store interface {
	ListGalleries(ctx context.Context) ([]Gallery, error)
	ReorderGalleries(ctx context.Context, ids []string) error
	ReorderImages(ctx context.Context, galleryID string, ids []string) error
	SetCover(ctx context.Context, galleryID, path string) error
}

const resyncTimeout = 10 * time.Second

// ErrUnknownGallery is returned for a gallery id the board has not loaded.
var ErrUnknownGallery = errors.New("gallery not loaded")

// Board applies reorders to its local copy first and then pushes them to the
// Store. A failed push discards local state by re-fetching everything.
type Board struct {
	store Store
	guard *Guard

	mu        sync.Mutex
	galleries []Gallery
}

// NewBoard creates a Board backed by store.
func NewBoard(store Store) *Board {
	return &Board{store: store, guard: NewGuard()}
}

// Refresh replaces local state with the store's.
func (b *Board) Refresh(ctx context.Context) error {
	galleries, err := b.store.ListGalleries(ctx)
	if err != nil {
		return fmt.Errorf("list galleries: %w", err)
	}
	b.mu.Lock()
	b.galleries = galleries
	b.mu.Unlock()
	return nil
}

// Galleries returns a copy of the local gallery list.
func (b *Board) Galleries() []Gallery {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Gallery, len(b.galleries))
	for i, g := range b.galleries {
		g.Images = append([]ImageRef(nil), g.Images...)
		out[i] = g
	}
	return out
}

// Gallery returns the local copy of one gallery.
func (b *Board) Gallery(id string) (Gallery, bool) {
	for _, g := range b.Galleries() {
		if g.ID == id {
			return g, true
		}
	}
	return Gallery{}, false
}

// MoveGallery swaps the gallery at index with its neighbour. It reports
// false without touching the store when the move is out of bounds.
func (b *Board) MoveGallery(ctx context.Context, index int, dir Direction) (bool, error) {
	b.mu.Lock()
	ids := make([]string, len(b.galleries))
	for i, g := range b.galleries {
		ids[i] = g.ID
	}
	if !CanMove(len(ids), index, dir) {
		b.mu.Unlock()
		return false, nil
	}
	b.galleries = reorderGalleries(b.galleries, MoveGallery(ids, index, dir))
	b.mu.Unlock()

	err := b.guard.Do(ctx, GalleriesKey, func(ctx context.Context) error {
		return b.store.ReorderGalleries(ctx, b.galleryIDs())
	})
	if err != nil {
		return true, b.resync(ctx, fmt.Errorf("reorder galleries: %w", err))
	}
	return true, nil
}

// MoveImage drops draggedID before targetID inside galleryID. A drag that
// started in another gallery is ignored.
func (b *Board) MoveImage(ctx context.Context, galleryID, sourceGalleryID, draggedID, targetID string) (bool, error) {
	b.mu.Lock()
	index := b.indexOf(galleryID)
	if index < 0 {
		b.mu.Unlock()
		return false, ErrUnknownGallery
	}
	next, moved := MoveImageWithin(galleryID, sourceGalleryID, b.galleries[index].Images, draggedID, targetID)
	if !moved {
		b.mu.Unlock()
		return false, nil
	}
	b.galleries[index].Images = next
	b.mu.Unlock()

	err := b.guard.Do(ctx, ImagesKey(galleryID), func(ctx context.Context) error {
		return b.store.ReorderImages(ctx, galleryID, b.imageIDs(galleryID))
	})
	if err != nil {
		return true, b.resync(ctx, fmt.Errorf("reorder images: %w", err))
	}
	return true, nil
}

// SetCover makes imageID the cover of galleryID without reordering images.
func (b *Board) SetCover(ctx context.Context, galleryID, imageID string) error {
	b.mu.Lock()
	index := b.indexOf(galleryID)
	if index < 0 {
		b.mu.Unlock()
		return ErrUnknownGallery
	}
	path := ""
	for _, img := range b.galleries[index].Images {
		if img.ID == imageID {
			path = img.Path
			break
		}
	}
	if path == "" {
		b.mu.Unlock()
		return fmt.Errorf("image %s not in gallery %s", imageID, galleryID)
	}
	if b.galleries[index].CoverImage == path {
		b.mu.Unlock()
		return nil
	}
	b.galleries[index].CoverImage = path
	b.mu.Unlock()

	err := b.guard.Do(ctx, ImagesKey(galleryID), func(ctx context.Context) error {
		return b.store.SetCover(ctx, galleryID, path)
	})
	if err != nil {
		return b.resync(ctx, fmt.Errorf("set cover: %w", err))
	}
	return nil
}

// resync runs even when ctx is what made the push fail.
func (b *Board) resync(ctx context.Context, cause error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resyncTimeout)
	defer cancel()
	if err := b.Refresh(ctx); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (b *Board) galleryIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]string, len(b.galleries))
	for i, g := range b.galleries {
		ids[i] = g.ID
	}
	return ids
}

func (b *Board) imageIDs(galleryID string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	index := b.indexOf(galleryID)
	if index < 0 {
		return nil
	}
	return ImageIDs(b.galleries[index].Images)
}

// indexOf expects b.mu to be held.
func (b *Board) indexOf(galleryID string) int {
	for i, g := range b.galleries {
		if g.ID == galleryID {
			return i
		}
	}
	return -1
}

func reorderGalleries(galleries []Gallery, ids []string) []Gallery {
	byID := make(map[string]Gallery, len(galleries))
	for _, g := range galleries {
		byID[g.ID] = g
	}
	out := make([]Gallery, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id])
	}
	return out
}
