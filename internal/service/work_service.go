package service

import (
	"context"
	"net/url"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/expansion"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
)

// WorkGallery is one gallery on the work page.
type WorkGallery struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Downloadable bool       `json:"downloadable"`
	Slug         string     `json:"slug"`
	Expanded     bool       `json:"expanded"`
	ImageCount   int        `json:"imageCount"`
	Cover        *db.Image  `json:"cover"`
	OtherImages  []db.Image `json:"otherImages"`
	// ToggleQuery is the query string the page navigates to when the
	// gallery header is clicked.
	ToggleQuery string `json:"toggleQuery"`
}

// WorkView is the public showcase as seen from one location.
type WorkView struct {
	Tab          expansion.Tab      `json:"tab"`
	Tabs         []expansion.Tab    `json:"tabs"`
	Expanded     *string            `json:"expandedGalleryId"`
	ScrollTarget *string            `json:"scrollTarget"`
	Location     string             `json:"location"`
	Galleries    []WorkGallery      `json:"galleries"`
	Videos       []VideoProjectView `json:"videos"`
}

// WorkService assembles the showcase from galleries and video projects.
type WorkService struct {
	galleries *GalleryService
	videos    *VideoProjectService
}

// NewWorkService creates a WorkService.
func NewWorkService(galleries *GalleryService, videos *VideoProjectService) *WorkService {
	return &WorkService{galleries: galleries, videos: videos}
}

// View restores the expansion state encoded in query and lays out the page.
func (s *WorkService) View(ctx context.Context, query url.Values) (WorkView, error) {
	galleries, err := s.galleries.List(ctx)
	if err != nil {
		return WorkView{}, err
	}
	projects, err := s.videos.List(ctx)
	if err != nil {
		return WorkView{}, err
	}
	return BuildWorkView(galleries, projects, query), nil
}

// BuildWorkView is View without the database.
func BuildWorkView(galleries []db.Gallery, projects []db.VideoProject, query url.Values) WorkView {
	entries := make([]expansion.Entry, 0, len(galleries))
	for _, g := range galleries {
		entries = append(entries, expansion.Entry{ID: g.ID, Title: g.Title})
	}

	controller := expansion.New()
	controller.Restore(query, entries)

	view := WorkView{
		Tab:       controller.Tab(),
		Tabs:      expansion.Tabs,
		Location:  controller.Location().Encode(),
		Galleries: make([]WorkGallery, 0, len(galleries)),
		Videos:    make([]VideoProjectView, 0, len(projects)),
	}
	if state := controller.State(); state.Expanded {
		id := state.GalleryID
		view.Expanded = &id
	}
	if target, ok := controller.ScrollTarget(); ok {
		view.ScrollTarget = &target
	}

	for i, g := range galleries {
		view.Galleries = append(view.Galleries, workGallery(g, controller, entries[i]))
	}
	for _, p := range projects {
		view.Videos = append(view.Videos, ViewOf(p))
	}
	return view
}

func workGallery(g db.Gallery, controller *expansion.Controller, entry expansion.Entry) WorkGallery {
	item := WorkGallery{
		ID:           g.ID,
		Title:        g.Title,
		Description:  g.Description,
		Downloadable: g.Downloadable,
		Slug:         expansion.Slugify(g.Title),
		Expanded:     controller.IsExpanded(g.ID),
		ImageCount:   len(g.Images),
		OtherImages:  []db.Image{},
		ToggleQuery:  controller.LocationAfterToggle(entry).Encode(),
	}

	cover := ""
	if g.CoverImage != nil {
		cover = *g.CoverImage
	}
	refs := imageRefs(g.Images)
	byID := make(map[string]db.Image, len(g.Images))
	for _, img := range g.Images {
		byID[img.ID] = img
	}

	if resolved, ok := ordering.ResolveCover(refs, cover); ok {
		img := byID[resolved.ID]
		item.Cover = &img
	}
	for _, ref := range ordering.OtherImages(refs, cover) {
		item.OtherImages = append(item.OtherImages, byID[ref.ID])
	}
	return item
}
