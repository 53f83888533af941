package handler

import (
	"github.com/jaysperspective/JoshuaIsaiahart/internal/auth"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	galleries *service.GalleryService
	images    *service.ImageService
	videos    *service.VideoProjectService
	blogs     *service.BlogService
	settings  *service.SettingsService
	work      *service.WorkService
	verifier  *auth.Verifier
}

// NewAPI constructs a handler set. Services writing the same orderings share
// one guard.
func NewAPI(gdb *gorm.DB, files service.ImageFiles, verifier *auth.Verifier) *API {
	guard := ordering.NewGuard()
	galleries := service.NewGalleryService(gdb, files, guard)
	videos := service.NewVideoProjectService(gdb, guard)

	return &API{
		db:        gdb,
		galleries: galleries,
		images:    service.NewImageService(gdb, files, guard),
		videos:    videos,
		blogs:     service.NewBlogService(gdb),
		settings:  service.NewSettingsService(gdb),
		work:      service.NewWorkService(galleries, videos),
		verifier:  verifier,
	}
}
