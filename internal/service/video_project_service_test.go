package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/video"
)

func TestVideoProjectValidation(t *testing.T) {
	svc := NewVideoProjectService(setupTestDB(t), nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input VideoProjectInput
		want  error
	}{
		{name: "missing title", input: VideoProjectInput{VideoURL: "https://youtu.be/dQw4w9WgXcQ"}, want: ErrVideoTitleRequired},
		{name: "missing url", input: VideoProjectInput{Title: "Reel"}, want: ErrVideoURLRequired},
		{name: "unknown url", input: VideoProjectInput{Title: "Reel", VideoURL: "https://example.com/page"}, want: ErrVideoURLInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestVideoProjectCRUDAndReorder(t *testing.T) {
	svc := NewVideoProjectService(setupTestDB(t), nil)
	ctx := context.Background()

	reel, err := svc.Create(ctx, VideoProjectInput{Title: "Reel", VideoURL: " https://youtu.be/dQw4w9WgXcQ "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	short, err := svc.Create(ctx, VideoProjectInput{Title: "Short", VideoURL: "https://vimeo.com/76979871", ThumbnailURL: strPtr("https://cdn.example/t.jpg")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if *reel.SortOrder != 0 || *short.SortOrder != 1 {
		t.Fatalf("expected append order 0,1 got %d,%d", *reel.SortOrder, *short.SortOrder)
	}
	if reel.VideoURL != "https://youtu.be/dQw4w9WgXcQ" {
		t.Fatalf("expected trimmed url, got %q", reel.VideoURL)
	}

	if err := svc.Reorder(ctx, []string{short.ID, reel.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	projects, _ := svc.List(ctx)
	if projects[0].ID != short.ID {
		t.Fatalf("expected short first, got %s", projects[0].Title)
	}

	updated, err := svc.Update(ctx, reel.ID, VideoProjectUpdate{Title: strPtr("Reel 2025"), VideoURL: strPtr("https://example.com/reel.mp4")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Reel 2025" || *updated.SortOrder != 1 {
		t.Fatalf("update must keep sort order: %+v", updated)
	}

	if err := svc.Delete(ctx, reel.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, reel.ID); !errors.Is(err, ErrVideoProjectNotFound) {
		t.Fatalf("expected ErrVideoProjectNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, reel.ID); !errors.Is(err, ErrVideoProjectNotFound) {
		t.Fatalf("expected ErrVideoProjectNotFound, got %v", err)
	}
}

func TestVideoProjectPartialUpdateKeepsOtherFields(t *testing.T) {
	svc := NewVideoProjectService(setupTestDB(t), nil)
	ctx := context.Background()

	project, err := svc.Create(ctx, VideoProjectInput{
		Title:        "Reel",
		Description:  strPtr("Showreel 2024"),
		VideoURL:     "https://vimeo.com/76979871",
		ThumbnailURL: strPtr("https://cdn.example/t.jpg"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, project.ID, VideoProjectUpdate{Title: strPtr(" Reel 2025 ")})
	if err != nil {
		t.Fatalf("title-only update: %v", err)
	}
	if updated.Title != "Reel 2025" || updated.VideoURL != "https://vimeo.com/76979871" {
		t.Fatalf("unexpected project after title update: %+v", updated)
	}
	if updated.Description == nil || *updated.Description != "Showreel 2024" {
		t.Fatalf("description should be kept, got %v", updated.Description)
	}
	if updated.ThumbnailURL == nil || *updated.ThumbnailURL != "https://cdn.example/t.jpg" {
		t.Fatalf("thumbnail should be kept, got %v", updated.ThumbnailURL)
	}

	updated, err = svc.Update(ctx, project.ID, VideoProjectUpdate{ThumbnailURL: strPtr("")})
	if err != nil {
		t.Fatalf("clear thumbnail: %v", err)
	}
	if updated.ThumbnailURL != nil || updated.Description == nil {
		t.Fatalf("only the thumbnail should be cleared: %+v", updated)
	}

	tests := []struct {
		name  string
		input VideoProjectUpdate
		want  error
	}{
		{name: "blank title", input: VideoProjectUpdate{Title: strPtr("  ")}, want: ErrVideoTitleRequired},
		{name: "blank url", input: VideoProjectUpdate{VideoURL: strPtr("")}, want: ErrVideoURLRequired},
		{name: "unknown url", input: VideoProjectUpdate{VideoURL: strPtr("https://example.com/page")}, want: ErrVideoURLInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Update(ctx, project.ID, tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := svc.Update(ctx, "missing", VideoProjectUpdate{Title: strPtr("x")}); !errors.Is(err, ErrVideoProjectNotFound) {
		t.Fatalf("expected ErrVideoProjectNotFound, got %v", err)
	}
}

func TestViewOf(t *testing.T) {
	youtube := ViewOf(db.VideoProject{VideoURL: "https://www.youtube.com/shorts/dQw4w9WgXcQ"})
	if youtube.Service != video.ServiceYouTube {
		t.Fatalf("expected youtube, got %s", youtube.Service)
	}
	if youtube.EmbedURL == nil || *youtube.EmbedURL != "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1" {
		t.Fatalf("unexpected embed %v", youtube.EmbedURL)
	}
	if youtube.DisplayThumbnail == nil || *youtube.DisplayThumbnail != "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Fatalf("unexpected thumbnail %v", youtube.DisplayThumbnail)
	}

	vimeo := ViewOf(db.VideoProject{VideoURL: "https://vimeo.com/76979871"})
	if vimeo.DisplayThumbnail != nil {
		t.Fatalf("vimeo has no derived thumbnail, got %s", *vimeo.DisplayThumbnail)
	}

	stored := ViewOf(db.VideoProject{VideoURL: "https://vimeo.com/76979871", ThumbnailURL: strPtr("https://cdn.example/t.jpg")})
	if stored.DisplayThumbnail == nil || *stored.DisplayThumbnail != "https://cdn.example/t.jpg" {
		t.Fatalf("stored thumbnail should win, got %v", stored.DisplayThumbnail)
	}

	broken := ViewOf(db.VideoProject{VideoURL: "not a url"})
	if broken.Service != video.ServiceNone || broken.EmbedURL != nil {
		t.Fatalf("unrecognized url should have no embed, got %+v", broken)
	}
}
