package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
)

// ErrPartialCreate means the gallery was created but its images were not all
// uploaded. The gallery is kept.
var ErrPartialCreate = errors.New("gallery created but upload failed")

// File is one upload.
type File struct {
	Name string
	Body io.Reader
}

// Galleries lists every gallery in display order.
func (c *Client) Galleries(ctx context.Context) ([]Gallery, error) {
	var out []Gallery
	err := c.doJSON(ctx, http.MethodGet, "/api/galleries", nil, nil, &out)
	return out, err
}

// Gallery fetches one gallery.
func (c *Client) Gallery(ctx context.Context, id string) (Gallery, error) {
	var out Gallery
	err := c.doJSON(ctx, http.MethodGet, "/api/galleries/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

// CreateGallery appends a gallery.
func (c *Client) CreateGallery(ctx context.Context, input GalleryInput) (Gallery, error) {
	var out Gallery
	err := c.doJSON(ctx, http.MethodPost, "/api/galleries", nil, input, &out)
	return out, err
}

// CreateGalleryWithImages creates a gallery and then uploads files into it.
// An upload failure does not undo the create: the returned error wraps
// ErrPartialCreate and the gallery is returned with whatever was uploaded.
func (c *Client) CreateGalleryWithImages(ctx context.Context, input GalleryInput, files []File) (Gallery, error) {
	gallery, err := c.CreateGallery(ctx, input)
	if err != nil {
		return Gallery{}, err
	}
	if len(files) == 0 {
		return gallery, nil
	}

	images, err := c.UploadImages(ctx, gallery.ID, files)
	gallery.Images = append(gallery.Images, images...)
	if err != nil {
		return gallery, fmt.Errorf("%w: %w", ErrPartialCreate, err)
	}
	if refreshed, err := c.Gallery(ctx, gallery.ID); err == nil {
		gallery = refreshed
	}
	return gallery, nil
}

// DeleteGallery removes a gallery and its images.
func (c *Client) DeleteGallery(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/galleries/"+url.PathEscape(id), nil, nil, nil)
}

// MoveGallery asks the server to swap a gallery with its neighbour.
func (c *Client) MoveGallery(ctx context.Context, id string, dir ordering.Direction) (bool, error) {
	var out struct {
		Moved bool `json:"moved"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/galleries/"+url.PathEscape(id)+"/move", nil,
		map[string]string{"direction": string(dir)}, &out)
	return out.Moved, err
}

// UploadImages sends files as one multipart request. On a partial failure
// the images stored before it are returned along with the error.
func (c *Client) UploadImages(ctx context.Context, galleryID string, files []File) ([]Image, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Body); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/api/galleries/"+url.PathEscape(galleryID)+"/images", nil), &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		Images []Image `json:"images"`
	}
	if err := c.send(req, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			_ = json.Unmarshal(apiErr.Body, &out)
		}
		return out.Images, err
	}
	return out.Images, nil
}

// DeleteImage removes one image from a gallery.
func (c *Client) DeleteImage(ctx context.Context, galleryID, imageID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/galleries/"+url.PathEscape(galleryID)+"/images",
		url.Values{"imageId": {imageID}}, nil, nil)
}

// MoveImage drops dragged in front of target.
func (c *Client) MoveImage(ctx context.Context, galleryID, draggedID, targetID string) (bool, error) {
	var out struct {
		Moved bool `json:"moved"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/galleries/"+url.PathEscape(galleryID)+"/images/move", nil,
		map[string]string{"draggedId": draggedID, "targetId": targetID, "sourceGalleryId": galleryID}, &out)
	return out.Moved, err
}

// UpdateCaption sets or clears an image caption.
func (c *Client) UpdateCaption(ctx context.Context, imageID string, caption *string) (Image, error) {
	var out Image
	err := c.doJSON(ctx, http.MethodPut, "/api/images/"+url.PathEscape(imageID), nil,
		map[string]*string{"caption": caption}, &out)
	return out, err
}

// ListGalleries implements ordering.Store.
func (c *Client) ListGalleries(ctx context.Context) ([]ordering.Gallery, error) {
	galleries, err := c.Galleries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ordering.Gallery, 0, len(galleries))
	for _, g := range galleries {
		out = append(out, toBoardGallery(g))
	}
	return out, nil
}

// ReorderGalleries implements ordering.Store.
func (c *Client) ReorderGalleries(ctx context.Context, ids []string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/galleries/reorder", nil, map[string][]string{"galleryIds": ids}, nil)
}

// ReorderImages implements ordering.Store.
func (c *Client) ReorderImages(ctx context.Context, galleryID string, ids []string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/galleries/"+url.PathEscape(galleryID)+"/images/reorder", nil,
		map[string][]string{"imageIds": ids}, nil)
}

// SetCover implements ordering.Store. An empty path clears the cover.
func (c *Client) SetCover(ctx context.Context, galleryID, path string) error {
	return c.doJSON(ctx, http.MethodPut, "/api/galleries/"+url.PathEscape(galleryID), nil,
		map[string]string{"coverImage": path}, nil)
}

func toBoardGallery(g Gallery) ordering.Gallery {
	out := ordering.Gallery{
		ID:           g.ID,
		Title:        g.Title,
		Downloadable: g.Downloadable,
		Images:       make([]ordering.ImageRef, 0, len(g.Images)),
	}
	if g.CoverImage != nil {
		out.CoverImage = *g.CoverImage
	}
	for _, img := range g.Images {
		out.Images = append(out.Images, ordering.ImageRef{ID: img.ID, Path: img.Path, GalleryID: g.ID})
	}
	return out
}
