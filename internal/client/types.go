package client

import "time"

// Image as returned by the API.
type Image struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Caption   *string   `json:"caption"`
	Order     int       `json:"order"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	GalleryID string    `json:"galleryId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Gallery as returned by the API, images in display order.
type Gallery struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	CoverImage   *string   `json:"coverImage"`
	Downloadable bool      `json:"downloadable"`
	SortOrder    *int      `json:"sortOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	Images       []Image   `json:"images"`
}

// GalleryInput creates a gallery.
type GalleryInput struct {
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	Downloadable bool    `json:"downloadable"`
}

// VideoProject with the playback details the server derives from its URL.
type VideoProject struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      *string `json:"description"`
	VideoURL         string  `json:"videoUrl"`
	ThumbnailURL     *string `json:"thumbnailUrl"`
	SortOrder        *int    `json:"sortOrder"`
	Service          string  `json:"service"`
	EmbedURL         *string `json:"embedUrl"`
	DisplayThumbnail *string `json:"displayThumbnail"`
}

// VideoProjectInput creates a video project.
type VideoProjectInput struct {
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	VideoURL     string  `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
}

// VideoProjectUpdate changes the set fields of a video project. An empty
// description or thumbnail clears it.
type VideoProjectUpdate struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	VideoURL     *string `json:"videoUrl,omitempty"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
}

// ParsedVideo is the answer of the video URL probe.
type ParsedVideo struct {
	Service     string  `json:"service"`
	ID          *string `json:"id"`
	OriginalURL string  `json:"originalUrl"`
	Valid       bool    `json:"valid"`
	EmbedURL    *string `json:"embedUrl"`
	Thumbnail   *string `json:"thumbnail"`
}

// Blog with its rendered HTML.
type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Settings are the social links.
type Settings struct {
	InstagramURL string `json:"instagramUrl"`
	LinkedinURL  string `json:"linkedinUrl"`
	YoutubeURL   string `json:"youtubeUrl"`
}

// WorkGallery is one gallery of the showcase view.
type WorkGallery struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Downloadable bool    `json:"downloadable"`
	Slug         string  `json:"slug"`
	Expanded     bool    `json:"expanded"`
	ImageCount   int     `json:"imageCount"`
	Cover        *Image  `json:"cover"`
	OtherImages  []Image `json:"otherImages"`
	ToggleQuery  string  `json:"toggleQuery"`
}

// WorkView is the public showcase.
type WorkView struct {
	Tab          string         `json:"tab"`
	Tabs         []string       `json:"tabs"`
	Expanded     *string        `json:"expandedGalleryId"`
	ScrollTarget *string        `json:"scrollTarget"`
	Location     string         `json:"location"`
	Galleries    []WorkGallery  `json:"galleries"`
	Videos       []VideoProject `json:"videos"`
}
