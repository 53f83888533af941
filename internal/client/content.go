package client

import (
	"context"
	"net/http"
	"net/url"
)

// VideoProjects lists video projects in display order.
func (c *Client) VideoProjects(ctx context.Context) ([]VideoProject, error) {
	var out []VideoProject
	err := c.doJSON(ctx, http.MethodGet, "/api/video-projects", nil, nil, &out)
	return out, err
}

// CreateVideoProject appends a video project.
func (c *Client) CreateVideoProject(ctx context.Context, input VideoProjectInput) (VideoProject, error) {
	var out VideoProject
	err := c.doJSON(ctx, http.MethodPost, "/api/video-projects", nil, input, &out)
	return out, err
}

// UpdateVideoProject changes the fields set in input.
func (c *Client) UpdateVideoProject(ctx context.Context, id string, input VideoProjectUpdate) (VideoProject, error) {
	var out VideoProject
	err := c.doJSON(ctx, http.MethodPut, "/api/video-projects/"+url.PathEscape(id), nil, input, &out)
	return out, err
}

// DeleteVideoProject removes a video project.
func (c *Client) DeleteVideoProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/video-projects/"+url.PathEscape(id), nil, nil, nil)
}

// ReorderVideoProjects stores a project order.
func (c *Client) ReorderVideoProjects(ctx context.Context, ids []string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/video-projects/reorder", nil, map[string][]string{"projectIds": ids}, nil)
}

// ParseVideo asks the server how it would play rawURL.
func (c *Client) ParseVideo(ctx context.Context, rawURL string) (ParsedVideo, error) {
	var out ParsedVideo
	err := c.doJSON(ctx, http.MethodGet, "/api/video/parse", url.Values{"url": {rawURL}}, nil, &out)
	return out, err
}

// Blogs lists posts, newest first.
func (c *Client) Blogs(ctx context.Context) ([]Blog, error) {
	var out []Blog
	err := c.doJSON(ctx, http.MethodGet, "/api/blogs", nil, nil, &out)
	return out, err
}

// CreateBlog publishes a markdown post.
func (c *Client) CreateBlog(ctx context.Context, title, content string) (Blog, error) {
	var out Blog
	err := c.doJSON(ctx, http.MethodPost, "/api/blogs", nil, map[string]string{"title": title, "content": content}, &out)
	return out, err
}

// DeleteBlog removes a post.
func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/blogs/"+url.PathEscape(id), nil, nil, nil)
}

// Settings returns the social links.
func (c *Client) Settings(ctx context.Context) (Settings, error) {
	var out Settings
	err := c.doJSON(ctx, http.MethodGet, "/api/settings", nil, nil, &out)
	return out, err
}

// UpdateSettings replaces the social links.
func (c *Client) UpdateSettings(ctx context.Context, settings Settings) (Settings, error) {
	var out Settings
	err := c.doJSON(ctx, http.MethodPut, "/api/settings", nil, settings, &out)
	return out, err
}

// Work returns the public showcase as seen from query.
func (c *Client) Work(ctx context.Context, query url.Values) (WorkView, error) {
	var out WorkView
	err := c.doJSON(ctx, http.MethodGet, "/api/work", query, nil, &out)
	return out, err
}
