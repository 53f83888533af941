package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/service"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/video"
)

type videoProjectPayload struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	VideoURL     string  `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

func (p videoProjectPayload) toInput() service.VideoProjectInput {
	return service.VideoProjectInput{
		Title:        p.Title,
		Description:  p.Description,
		VideoURL:     p.VideoURL,
		ThumbnailURL: p.ThumbnailURL,
	}
}

type videoProjectPatch struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	VideoURL     *string `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

func (p videoProjectPatch) toUpdate() service.VideoProjectUpdate {
	return service.VideoProjectUpdate{
		Title:        p.Title,
		Description:  p.Description,
		VideoURL:     p.VideoURL,
		ThumbnailURL: p.ThumbnailURL,
	}
}

type videoReorderPayload struct {
	ProjectIDs []string `json:"projectIds"`
}

// ListVideoProjects returns every project with its playback details.
func (a *API) ListVideoProjects(c *gin.Context) {
	projects, err := a.videos.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "Failed to fetch video projects")
		return
	}

	views := make([]service.VideoProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, service.ViewOf(p))
	}
	c.JSON(http.StatusOK, views)
}

// GetVideoProject returns one project.
func (a *API) GetVideoProject(c *gin.Context) {
	project, err := a.videos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVideoProjectNotFound) {
			respondError(c, http.StatusNotFound, "Video project not found")
			return
		}
		respondInternal(c, err, "Failed to fetch video project")
		return
	}
	c.JSON(http.StatusOK, service.ViewOf(*project))
}

// CreateVideoProject appends a project.
func (a *API) CreateVideoProject(c *gin.Context) {
	var payload videoProjectPayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}

	project, err := a.videos.Create(c.Request.Context(), payload.toInput())
	if err != nil {
		if status, message, ok := videoValidationError(err); ok {
			respondError(c, status, message)
			return
		}
		respondInternal(c, err, "Failed to create video project")
		return
	}
	c.JSON(http.StatusCreated, service.ViewOf(*project))
}

// UpdateVideoProject changes the fields present in the body.
func (a *API) UpdateVideoProject(c *gin.Context) {
	var payload videoProjectPatch
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}

	project, err := a.videos.Update(c.Request.Context(), c.Param("id"), payload.toUpdate())
	if err != nil {
		if errors.Is(err, service.ErrVideoProjectNotFound) {
			respondError(c, http.StatusNotFound, "Video project not found")
			return
		}
		if status, message, ok := videoValidationError(err); ok {
			respondError(c, status, message)
			return
		}
		respondInternal(c, err, "Failed to update video project")
		return
	}
	c.JSON(http.StatusOK, service.ViewOf(*project))
}

// DeleteVideoProject removes a project.
func (a *API) DeleteVideoProject(c *gin.Context) {
	if err := a.videos.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrVideoProjectNotFound) {
			respondError(c, http.StatusNotFound, "Video project not found")
			return
		}
		respondInternal(c, err, "Failed to delete video project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReorderVideoProjects stores a full project order.
func (a *API) ReorderVideoProjects(c *gin.Context) {
	var payload videoReorderPayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}
	if payload.ProjectIDs == nil {
		respondError(c, http.StatusBadRequest, "projectIds is required")
		return
	}

	if err := a.videos.Reorder(c.Request.Context(), payload.ProjectIDs); err != nil {
		if errors.Is(err, service.ErrReorderMismatch) {
			respondError(c, http.StatusBadRequest, "Order contains unknown or repeated projects")
			return
		}
		respondInternal(c, err, "Failed to reorder video projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ParseVideoURL classifies ?url= for the admin form.
func (a *API) ParseVideoURL(c *gin.Context) {
	parsed := video.Parse(c.Query("url"))
	response := gin.H{
		"service":     parsed.Service,
		"id":          nil,
		"originalUrl": parsed.OriginalURL,
		"valid":       parsed.Service != video.ServiceNone,
		"embedUrl":    nil,
		"thumbnail":   nil,
	}
	if parsed.HasID() {
		response["id"] = parsed.ID
	}
	if embed, ok := video.EmbedURL(parsed); ok {
		response["embedUrl"] = embed
	}
	if thumb, ok := video.ThumbnailURL(parsed); ok {
		response["thumbnail"] = thumb
	}
	c.JSON(http.StatusOK, response)
}

func videoValidationError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, service.ErrVideoTitleRequired):
		return http.StatusBadRequest, "Title is required", true
	case errors.Is(err, service.ErrVideoURLRequired):
		return http.StatusBadRequest, "Video URL is required", true
	case errors.Is(err, service.ErrVideoURLInvalid):
		return http.StatusBadRequest, "Video URL must be a YouTube, Vimeo or direct video link", true
	default:
		return 0, "", false
	}
}
