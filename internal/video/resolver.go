// Package video classifies video links into a hosting provider and derives
// playback and thumbnail URLs from them.
package video

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Service identifies the hosting provider of a video link.
type Service string

const (
	ServiceNone    Service = ""
	ServiceYouTube Service = "youtube"
	ServiceVimeo   Service = "vimeo"
	ServiceDirect  Service = "direct"
)

func (s Service) String() string {
	if s == ServiceNone {
		return "none"
	}
	return string(s)
}

// MarshalJSON encodes ServiceNone as null.
func (s Service) MarshalJSON() ([]byte, error) {
	if s == ServiceNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// ParsedVideo is the derived, never persisted, classification of a link.
type ParsedVideo struct {
	Service     Service `json:"service"`
	ID          string  `json:"id,omitempty"`
	OriginalURL string  `json:"originalUrl"`
}

// HasID reports whether the provider exposed an identifier.
func (p ParsedVideo) HasID() bool {
	return p.ID != ""
}

// Patterns are tried in order; the first match wins.
var (
	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	}
	vimeoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`vimeo\.com/(\d+)`),
		regexp.MustCompile(`player\.vimeo\.com/video/(\d+)`),
	}
	directFilePattern = regexp.MustCompile(`(?i)\.(mp4|webm|ogg|mov)(\?.*)?$`)
)

// Parse classifies raw. Malformed or unknown input yields ServiceNone.
func Parse(raw string) ParsedVideo {
	result := ParsedVideo{OriginalURL: raw}
	if raw == "" {
		return result
	}

	for _, pattern := range youtubePatterns {
		if match := pattern.FindStringSubmatch(raw); match != nil {
			result.Service = ServiceYouTube
			result.ID = match[1]
			return result
		}
	}

	for _, pattern := range vimeoPatterns {
		if match := pattern.FindStringSubmatch(raw); match != nil {
			result.Service = ServiceVimeo
			result.ID = match[1]
			return result
		}
	}

	if directFilePattern.MatchString(raw) {
		result.Service = ServiceDirect
	}
	return result
}

// EmbedURL returns the player URL for p.
func EmbedURL(p ParsedVideo) (string, bool) {
	switch p.Service {
	case ServiceYouTube:
		return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1", p.ID), true
	case ServiceVimeo:
		return fmt.Sprintf("https://player.vimeo.com/video/%s?autoplay=1", p.ID), true
	case ServiceDirect:
		return p.OriginalURL, true
	default:
		return "", false
	}
}

// ThumbnailURL returns a provider thumbnail. Only YouTube exposes a
// deterministic one; callers fall back to a stored thumbnail or a placeholder.
func ThumbnailURL(p ParsedVideo) (string, bool) {
	if p.Service == ServiceYouTube {
		return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", p.ID), true
	}
	return "", false
}

// IsValid reports whether raw resolves to a known provider or a direct file.
func IsValid(raw string) bool {
	return Parse(raw).Service != ServiceNone
}

// DisplayThumbnail prefers the stored thumbnail and otherwise derives one from
// the video link.
func DisplayThumbnail(stored, videoURL string) (string, bool) {
	if trimmed := strings.TrimSpace(stored); trimmed != "" {
		return trimmed, true
	}
	return ThumbnailURL(Parse(videoURL))
}
