package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/service"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/storage"
)

// uploadField is the multipart field carrying gallery images.
const uploadField = "files"

type imageMovePayload struct {
	DraggedID       string `json:"draggedId"`
	TargetID        string `json:"targetId"`
	SourceGalleryID string `json:"sourceGalleryId"`
}

type imageReorderPayload struct {
	ImageIDs []string `json:"imageIds"`
}

type captionPayload struct {
	Caption *string `json:"caption"`
}

// UploadImages stores the files of a multipart upload in a gallery.
func (a *API) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "No files uploaded")
		return
	}

	headers := form.File[uploadField]
	uploads := make([]service.Upload, 0, len(headers))
	for _, header := range headers {
		uploads = append(uploads, uploadFromHeader(header))
	}

	images, err := a.images.Upload(c.Request.Context(), c.Param("id"), uploads)
	if err != nil {
		status, message := uploadFailure(err)
		if status == http.StatusInternalServerError {
			respondInternal(c, err, message)
			return
		}
		c.JSON(status, gin.H{"error": message, "images": nonNilImages(images)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"images": images})
}

func uploadFromHeader(header *multipart.FileHeader) service.Upload {
	return service.Upload{
		Name: header.Filename,
		Open: func() (io.ReadCloser, error) { return header.Open() },
	}
}

func uploadFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNoFiles):
		return http.StatusBadRequest, "No files uploaded"
	case errors.Is(err, service.ErrGalleryNotFound):
		return http.StatusNotFound, "Gallery not found"
	case errors.Is(err, storage.ErrUnsupportedType):
		return http.StatusBadRequest, "Only image files can be uploaded" + failedName(err)
	case errors.Is(err, storage.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "File is too large" + failedName(err)
	default:
		var uploadErr *service.UploadError
		if errors.As(err, &uploadErr) {
			return http.StatusInternalServerError, "Failed to upload " + uploadErr.Name
		}
		return http.StatusInternalServerError, "Failed to upload images"
	}
}

func failedName(err error) string {
	var uploadErr *service.UploadError
	if errors.As(err, &uploadErr) && uploadErr.Name != "" {
		return ": " + uploadErr.Name
	}
	return ""
}

func nonNilImages(images []db.Image) []db.Image {
	if images == nil {
		return []db.Image{}
	}
	return images
}

// DeleteImage removes ?imageId= from a gallery.
func (a *API) DeleteImage(c *gin.Context) {
	imageID := strings.TrimSpace(c.Query("imageId"))
	if imageID == "" {
		respondError(c, http.StatusBadRequest, "imageId is required")
		return
	}

	if err := a.images.Delete(c.Request.Context(), c.Param("id"), imageID); err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryNotFound):
			respondError(c, http.StatusNotFound, "Gallery not found")
		case errors.Is(err, service.ErrImageNotFound):
			respondError(c, http.StatusNotFound, "Image not found")
		default:
			respondInternal(c, err, "Failed to delete image")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MoveImage drops one image in front of another inside the same gallery.
func (a *API) MoveImage(c *gin.Context) {
	var payload imageMovePayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}
	if payload.DraggedID == "" || payload.TargetID == "" {
		respondError(c, http.StatusBadRequest, "draggedId and targetId are required")
		return
	}

	moved, err := a.images.Move(c.Request.Context(), c.Param("id"), payload.SourceGalleryID, payload.DraggedID, payload.TargetID)
	if err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			respondError(c, http.StatusNotFound, "Gallery not found")
			return
		}
		respondInternal(c, err, "Failed to move image")
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": moved})
}

// ReorderImages stores the full image order of a gallery.
func (a *API) ReorderImages(c *gin.Context) {
	var payload imageReorderPayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}

	if err := a.images.Reorder(c.Request.Context(), c.Param("id"), payload.ImageIDs); err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryNotFound):
			respondError(c, http.StatusNotFound, "Gallery not found")
		case errors.Is(err, service.ErrImageOrderMismatch):
			respondError(c, http.StatusBadRequest, "Image order must list every image once")
		default:
			respondInternal(c, err, "Failed to reorder images")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateImage edits an image caption.
func (a *API) UpdateImage(c *gin.Context) {
	var payload captionPayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}

	image, err := a.images.UpdateCaption(c.Request.Context(), c.Param("id"), payload.Caption)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			respondError(c, http.StatusNotFound, "Image not found")
			return
		}
		respondInternal(c, err, "Failed to update image")
		return
	}
	c.JSON(http.StatusOK, image)
}
