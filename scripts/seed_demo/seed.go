package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type demoGallery struct {
	title        string
	description  string
	downloadable bool
	// sizes drives the aspect mix: landscape, portrait and square frames.
	sizes [][2]int
	tint  color.RGBA
}

var demoGalleries = []demoGallery{
	{
		title:       "Streets of Lisbon",
		description: "Trams, tiles and late light.",
		sizes:       [][2]int{{1200, 800}, {800, 1200}, {1000, 1000}, {1200, 675}},
		tint:        color.RGBA{R: 214, G: 140, B: 69, A: 255},
	},
	{
		title:        "Portraits",
		description:  "Friends, strangers, studio.",
		downloadable: true,
		sizes:        [][2]int{{800, 1200}, {900, 1200}, {800, 1000}},
		tint:         color.RGBA{R: 120, G: 96, B: 160, A: 255},
	},
	{
		title: "Coastlines",
		sizes: [][2]int{{1600, 900}, {1200, 800}},
		tint:  color.RGBA{R: 58, G: 132, B: 170, A: 255},
	},
}

var demoVideos = []service.VideoProjectInput{
	{Title: "Showreel 2024", VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
	{Title: "Harbour at Dawn", VideoURL: "https://vimeo.com/76979871"},
	{Title: "Studio B-roll", VideoURL: "https://media.example.com/broll.mp4"},
}

const demoBlog = `Notes from a month of shooting film around the harbour.

https://youtu.be/dQw4w9WgXcQ

- Portra 400 for the mornings
- HP5 pushed a stop after dark`

type seedSummary struct {
	Galleries int
	Images    int
	Videos    int
	Blogs     int
	Skipped   bool
}

// seed fills an empty database with demo content. A database that already
// has galleries is left alone.
func seed(ctx context.Context, gdb *gorm.DB, files service.ImageFiles, log *logrus.Logger) (seedSummary, error) {
	var count int64
	if err := gdb.WithContext(ctx).Model(&db.Gallery{}).Count(&count).Error; err != nil {
		return seedSummary{}, err
	}
	if count > 0 {
		log.WithField("galleries", count).Info("galleries already exist, skipping seed")
		return seedSummary{Skipped: true}, nil
	}

	guard := ordering.NewGuard()
	galleries := service.NewGalleryService(gdb, files, guard)
	images := service.NewImageService(gdb, files, guard)
	videos := service.NewVideoProjectService(gdb, guard)

	var summary seedSummary
	for _, demo := range demoGalleries {
		description := demo.description
		input := service.GalleryInput{Title: demo.title, Downloadable: demo.downloadable}
		if description != "" {
			input.Description = &description
		}
		gallery, err := galleries.Create(ctx, input)
		if err != nil {
			return summary, fmt.Errorf("create gallery %q: %w", demo.title, err)
		}
		summary.Galleries++

		uploads := make([]service.Upload, 0, len(demo.sizes))
		for i, size := range demo.sizes {
			raw, err := demoImage(size[0], size[1], demo.tint)
			if err != nil {
				return summary, err
			}
			uploads = append(uploads, service.Upload{
				Name: fmt.Sprintf("%s-%02d.png", gallery.ID[:8], i+1),
				Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(raw)), nil },
			})
		}
		saved, err := images.Upload(ctx, gallery.ID, uploads)
		summary.Images += len(saved)
		if err != nil {
			return summary, fmt.Errorf("upload images for %q: %w", demo.title, err)
		}
		log.WithFields(logrus.Fields{"gallery": demo.title, "images": len(saved)}).Info("seeded gallery")
	}

	for _, input := range demoVideos {
		if _, err := videos.Create(ctx, input); err != nil {
			return summary, fmt.Errorf("create video %q: %w", input.Title, err)
		}
		summary.Videos++
	}

	if _, err := service.NewBlogService(gdb).Create(ctx, service.BlogInput{Title: "Harbour notes", Content: demoBlog}); err != nil {
		return summary, fmt.Errorf("create blog: %w", err)
	}
	summary.Blogs++

	if _, err := service.NewSettingsService(gdb).Update(ctx, service.SettingsInput{
		InstagramURL: "https://instagram.com/example",
		YoutubeURL:   "https://youtube.com/@example",
	}); err != nil {
		return summary, fmt.Errorf("update settings: %w", err)
	}
	return summary, nil
}

// demoImage draws a vertical gradient of tint.
func demoImage(w, h int, tint color.RGBA) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		shade := uint8(255 * y / h)
		c := color.RGBA{
			R: uint8((int(tint.R) + int(shade)) / 2),
			G: uint8((int(tint.G) + int(shade)) / 2),
			B: uint8((int(tint.B) + int(shade)) / 2),
			A: 255,
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode demo image: %w", err)
	}
	return buf.Bytes(), nil
}
