package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/service"
)

type blogPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListBlogs returns rendered posts, newest first.
func (a *API) ListBlogs(c *gin.Context) {
	blogs, err := a.blogs.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "Failed to fetch blogs")
		return
	}

	views := make([]service.BlogView, 0, len(blogs))
	for _, blog := range blogs {
		view, err := a.blogs.Render(blog)
		if err != nil {
			respondInternal(c, err, "Failed to render blogs")
			return
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, views)
}

// GetBlog returns one rendered post.
func (a *API) GetBlog(c *gin.Context) {
	blog, err := a.blogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			respondError(c, http.StatusNotFound, "Blog not found")
			return
		}
		respondInternal(c, err, "Failed to fetch blog")
		return
	}

	view, err := a.blogs.Render(*blog)
	if err != nil {
		respondInternal(c, err, "Failed to render blog")
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateBlog stores a post.
func (a *API) CreateBlog(c *gin.Context) {
	var payload blogPayload
	if !bindJSON(c, &payload, "Invalid request") {
		return
	}

	blog, err := a.blogs.Create(c.Request.Context(), service.BlogInput{Title: payload.Title, Content: payload.Content})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlogTitleRequired), errors.Is(err, service.ErrBlogContentRequired):
			respondError(c, http.StatusBadRequest, "Title and content are required")
		default:
			respondInternal(c, err, "Failed to create blog")
		}
		return
	}
	c.JSON(http.StatusCreated, blog)
}

// DeleteBlog removes a post.
func (a *API) DeleteBlog(c *gin.Context) {
	if err := a.blogs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			respondError(c, http.StatusNotFound, "Blog not found")
			return
		}
		respondInternal(c, err, "Failed to delete blog")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
