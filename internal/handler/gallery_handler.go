package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/service"
)

type galleryCreatePayload struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Downloadable bool    `json:"downloadable"`
}

type galleryUpdatePayload struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Downloadable *bool    `json:"downloadable"`
	CoverImage   *string  `json:"coverImage"`
	ImageOrder   []string `json:"imageOrder"`
}

func (p galleryUpdatePayload) toUpdate() service.GalleryUpdate {
	return service.GalleryUpdate{
		Title:        p.Title,
		Description:  p.Description,
		Downloadable: p.Downloadable,
		CoverImage:   p.CoverImage,
		ImageOrder:   p.ImageOrder,
	}
}

type galleryReorderPayload struct {
	GalleryIDs []string `json:"galleryIds"`
}

type galleryMovePayload struct {
	Direction string `json:"direction"`
}

// ListGalleries returns every gallery with its images, in display order.
func (a *API) ListGalleries(c *gin.Context) {
	galleries, err := a.galleries.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "Failed to fetch galleries")
		return
	}
	c.JSON(http.StatusOK, galleries)
}

// GetGallery returns one gallery.
func (a *API) GetGallery(c *gin.Context) {
	gallery, err := a.galleries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			respondError(c, http.StatusNotFound, "Gallery not found")
			return
		}
		respondInternal(c, err, "Failed to fetch gallery")
		return
	}
	c.JSON(http.StatusOK, gallery)
}

// CreateGallery appends a new, empty gallery.
func (a *API) CreateGallery(c *gin.Context) {
	var payload galleryCreatePayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}

	gallery, err := a.galleries.Create(c.Request.Context(), service.GalleryInput{
		Title:        payload.Title,
		Description:  payload.Description,
		Downloadable: payload.Downloadable,
	})
	if err != nil {
		if errors.Is(err, service.ErrGalleryTitleRequired) {
			respondError(c, http.StatusBadRequest, "Title is required")
			return
		}
		respondInternal(c, err, "Failed to create gallery")
		return
	}
	c.JSON(http.StatusCreated, gallery)
}

// UpdateGallery edits metadata, the cover and the image order.
func (a *API) UpdateGallery(c *gin.Context) {
	var payload galleryUpdatePayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}

	gallery, err := a.galleries.Update(c.Request.Context(), c.Param("id"), payload.toUpdate())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryNotFound):
			respondError(c, http.StatusNotFound, "Gallery not found")
		case errors.Is(err, service.ErrGalleryTitleRequired):
			respondError(c, http.StatusBadRequest, "Title is required")
		case errors.Is(err, service.ErrCoverNotInGallery):
			respondError(c, http.StatusBadRequest, "Cover image must belong to the gallery")
		case errors.Is(err, service.ErrImageOrderMismatch):
			respondError(c, http.StatusBadRequest, "Image order must list every image once")
		default:
			respondInternal(c, err, "Failed to update gallery")
		}
		return
	}
	c.JSON(http.StatusOK, gallery)
}

// DeleteGallery removes a gallery and its images.
func (a *API) DeleteGallery(c *gin.Context) {
	if err := a.galleries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			respondError(c, http.StatusNotFound, "Gallery not found")
			return
		}
		respondInternal(c, err, "Failed to delete gallery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReorderGalleries stores a full gallery order.
func (a *API) ReorderGalleries(c *gin.Context) {
	var payload galleryReorderPayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}
	if payload.GalleryIDs == nil {
		respondError(c, http.StatusBadRequest, "galleryIds is required")
		return
	}

	if err := a.galleries.Reorder(c.Request.Context(), payload.GalleryIDs); err != nil {
		if errors.Is(err, service.ErrReorderMismatch) {
			respondError(c, http.StatusBadRequest, "Order contains unknown or repeated galleries")
			return
		}
		respondInternal(c, err, "Failed to reorder galleries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MoveGallery swaps a gallery with its neighbour.
func (a *API) MoveGallery(c *gin.Context) {
	var payload galleryMovePayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}
	dir, err := ordering.ParseDirection(payload.Direction)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Direction must be up or down")
		return
	}

	moved, err := a.galleries.Move(c.Request.Context(), c.Param("id"), dir)
	if err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			respondError(c, http.StatusNotFound, "Gallery not found")
			return
		}
		respondInternal(c, err, "Failed to move gallery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": moved})
}
