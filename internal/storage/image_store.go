// Package storage keeps uploaded gallery images on local disk under one
// directory per gallery.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedType = errors.New("file is not a supported image")
	ErrTooLarge        = errors.New("file exceeds the upload limit")
	ErrInvalidPath     = errors.New("path is outside the upload directory")
)

// sniffLen covers every signature filetype knows about.
const sniffLen = 261

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/avif": true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// StoredImage describes a file written by Save.
type StoredImage struct {
	Filename string
	Path     string
	MIME     string
	Size     int64
	Width    int
	Height   int
}

// ImageStore writes uploads below root and exposes them under urlPath.
type ImageStore struct {
	root     string
	urlPath  string
	maxBytes int64
	now      func() time.Time
}

// NewImageStore creates root when missing.
func NewImageStore(root, urlPath string, maxBytes int64) (*ImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", root, err)
	}
	return &ImageStore{
		root:     root,
		urlPath:  "/" + strings.Trim(urlPath, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
	}, nil
}

// Save sniffs r, rejects anything that is not an image and writes it to
// <root>/<galleryID>/<millis>-<sanitized name>. The returned Path is the
// public URL path of the file.
func (s *ImageStore) Save(ctx context.Context, galleryID, originalName string, r io.Reader) (StoredImage, error) {
	if err := ctx.Err(); err != nil {
		return StoredImage{}, err
	}
	if err := checkSegment(galleryID); err != nil {
		return StoredImage{}, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return StoredImage{}, fmt.Errorf("storage: read upload: %w", err)
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || !allowedMIME[kind.MIME.Value] {
		return StoredImage{}, ErrUnsupportedType
	}

	dir := filepath.Join(s.root, galleryID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredImage{}, fmt.Errorf("storage: create gallery dir: %w", err)
	}

	filename := fmt.Sprintf("%d-%s", s.now().UnixMilli(), SanitizeFilename(originalName))
	target := filepath.Join(dir, filename)
	if _, err := os.Stat(target); err == nil {
		filename = fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), uuid.NewString()[:8], SanitizeFilename(originalName))
		target = filepath.Join(dir, filename)
	}
	temp := target + ".tmp"

	f, err := os.Create(temp)
	if err != nil {
		return StoredImage{}, fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close()

	limited := io.LimitedReader{R: io.MultiReader(bytes.NewReader(head), r), N: s.maxBytes + 1}
	written, err := io.Copy(f, &limited)
	if err != nil {
		_ = os.Remove(temp)
		return StoredImage{}, fmt.Errorf("storage: write file: %w", err)
	}
	if written > s.maxBytes {
		_ = f.Close()
		_ = os.Remove(temp)
		return StoredImage{}, ErrTooLarge
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(temp)
		return StoredImage{}, fmt.Errorf("storage: close file: %w", err)
	}
	if err := os.Rename(temp, target); err != nil {
		_ = os.Remove(temp)
		return StoredImage{}, fmt.Errorf("storage: rename file: %w", err)
	}

	width, height := dimensions(target)
	return StoredImage{
		Filename: filename,
		Path:     path.Join(s.urlPath, galleryID, filename),
		MIME:     kind.MIME.Value,
		Size:     written,
		Width:    width,
		Height:   height,
	}, nil
}

// Delete removes the file behind a public URL path. A missing file is not an
// error.
func (s *ImageStore) Delete(ctx context.Context, urlPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(urlPath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove file: %w", err)
	}
	return nil
}

// RemoveGallery deletes the whole directory of a gallery.
func (s *ImageStore) RemoveGallery(ctx context.Context, galleryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkSegment(galleryID); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(s.root, galleryID)); err != nil {
		return fmt.Errorf("storage: remove gallery dir: %w", err)
	}
	return nil
}

// Root is the directory served under URLPath.
func (s *ImageStore) Root() string {
	return s.root
}

// URLPath is the public prefix of stored files.
func (s *ImageStore) URLPath() string {
	return s.urlPath
}

func (s *ImageStore) resolve(urlPath string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimPrefix(urlPath, "/"))
	prefix := s.urlPath + "/"
	if !strings.HasPrefix(cleaned, prefix) {
		return "", ErrInvalidPath
	}
	rel := strings.TrimPrefix(cleaned, prefix)
	if rel == "" {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), nil
}

// SanitizeFilename keeps the base name and replaces every character outside
// [a-zA-Z0-9.-] with an underscore.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == ".." {
		name = ""
	}
	name = unsafeChars.ReplaceAllString(name, "_")
	if strings.Trim(name, ".") == "" {
		return "image"
	}
	return name
}

func checkSegment(segment string) error {
	if segment == "" || segment == "." || segment == ".." || strings.ContainsAny(segment, `/\`) {
		return ErrInvalidPath
	}
	return nil
}

func dimensions(file string) (int, int) {
	f, err := os.Open(file)
	if err != nil {
		return 0, 0
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
