package ordering

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Guard serializes writes per entity key so that an earlier reorder can never
// land after a later one. A key's lock exists only while someone holds or
// waits for it.
type Guard struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sem  *semaphore.Weighted
	refs int
}

// NewGuard creates an empty Guard.
func NewGuard() *Guard {
	return &Guard{locks: make(map[string]*keyLock)}
}

// Do runs fn while holding the lock for key. It waits for an in-flight call
// on the same key and gives up when ctx is done.
func (g *Guard) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	lock := g.acquireRef(key)
	defer g.releaseRef(key)

	if err := lock.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer lock.sem.Release(1)
	return fn(ctx)
}

// Busy reports whether a call for key is running.
func (g *Guard) Busy(key string) bool {
	lock := g.acquireRef(key)
	defer g.releaseRef(key)

	if !lock.sem.TryAcquire(1) {
		return true
	}
	lock.sem.Release(1)
	return false
}

func (g *Guard) acquireRef(key string) *keyLock {
	g.mu.Lock()
	defer g.mu.Unlock()
	lock, ok := g.locks[key]
	if !ok {
		lock = &keyLock{sem: semaphore.NewWeighted(1)}
		g.locks[key] = lock
	}
	lock.refs++
	return lock
}

func (g *Guard) releaseRef(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	lock := g.locks[key]
	lock.refs--
	if lock.refs == 0 {
		delete(g.locks, key)
	}
}

// GalleriesKey guards the gallery list order.
const GalleriesKey = "galleries"

// VideoProjectsKey guards the video project list order.
const VideoProjectsKey = "video-projects"

// ImagesKey guards the image order of one gallery.
func ImagesKey(galleryID string) string {
	return "gallery-images:" + galleryID
}
