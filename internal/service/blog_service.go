package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"gorm.io/gorm"
)

var (
	ErrBlogNotFound        = errors.New("blog not found")
	ErrBlogTitleRequired   = errors.New("blog title is required")
	ErrBlogContentRequired = errors.New("blog content is required")
)

// BlogService handles blog posts.
type BlogService struct {
	db *gorm.DB
}

// BlogInput is accepted on create.
type BlogInput struct {
	Title   string
	Content string
}

// BlogView is a post with its rendered body.
type BlogView struct {
	db.Blog
	ContentHTML string `json:"contentHtml"`
}

// NewBlogService creates a BlogService.
func NewBlogService(gdb *gorm.DB) *BlogService {
	return &BlogService{db: gdb}
}

// List returns posts newest first.
func (s *BlogService) List(ctx context.Context) ([]db.Blog, error) {
	var blogs []db.Blog
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

// Get fetches one post.
func (s *BlogService) Get(ctx context.Context, id string) (*db.Blog, error) {
	var blog db.Blog
	if err := s.db.WithContext(ctx).First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// Create stores a post. Title and content are trimmed and both required.
func (s *BlogService) Create(ctx context.Context, input BlogInput) (*db.Blog, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, ErrBlogTitleRequired
	}
	if content == "" {
		return nil, ErrBlogContentRequired
	}

	blog := db.Blog{Title: title, Content: content}
	if err := s.db.WithContext(ctx).Create(&blog).Error; err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return &blog, nil
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&db.Blog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// Render attaches the sanitized HTML body.
func (s *BlogService) Render(blog db.Blog) (BlogView, error) {
	rendered, err := RenderMarkdown(blog.Content)
	if err != nil {
		return BlogView{}, err
	}
	return BlogView{Blog: blog, ContentHTML: rendered}, nil
}
