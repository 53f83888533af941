// Package ordering keeps galleries and their images in a user-defined order.
//
// Galleries move by swapping with a neighbour; images move by drag and drop,
// which splices the dragged image out and reinserts it before the drop target.
package ordering

import (
	"fmt"
	"strings"
)

// Direction of a single-step gallery move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up" or "down" in any case.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	default:
		return "", fmt.Errorf("invalid direction %q", raw)
	}
}

// ImageRef is the part of an image the ordering rules look at.
type ImageRef struct {
	ID        string
	Path      string
	GalleryID string
}

// MoveGallery swaps the element at index with its neighbour in dir. A move
// that would leave the list returns order unchanged.
func MoveGallery(order []string, index int, dir Direction) []string {
	if !CanMove(len(order), index, dir) {
		return order
	}

	target := neighbour(index, dir)
	next := make([]string, len(order))
	copy(next, order)
	next[index], next[target] = next[target], next[index]
	return next
}

// CanMove reports whether index has a neighbour in dir within a list of
// length elements.
func CanMove(length, index int, dir Direction) bool {
	if index < 0 || index >= length {
		return false
	}
	target := neighbour(index, dir)
	return target >= 0 && target < length
}

func neighbour(index int, dir Direction) int {
	if dir == Down {
		return index + 1
	}
	return index - 1
}

// MoveImage removes draggedID from images and reinserts it immediately before
// targetID's position after the removal. The second result is false when
// nothing moved: equal ids or an id not present in images.
func MoveImage(images []ImageRef, draggedID, targetID string) ([]ImageRef, bool) {
	if draggedID == targetID {
		return images, false
	}

	from := indexOfImage(images, draggedID)
	if from < 0 || indexOfImage(images, targetID) < 0 {
		return images, false
	}

	dragged := images[from]
	rest := make([]ImageRef, 0, len(images))
	rest = append(rest, images[:from]...)
	rest = append(rest, images[from+1:]...)

	to := indexOfImage(rest, targetID)
	next := make([]ImageRef, 0, len(images))
	next = append(next, rest[:to]...)
	next = append(next, dragged)
	next = append(next, rest[to:]...)
	return next, true
}

// MoveImageWithin is MoveImage for a drag that started in sourceGalleryID and
// was dropped on galleryID. Cross-gallery drops are rejected silently.
func MoveImageWithin(galleryID, sourceGalleryID string, images []ImageRef, draggedID, targetID string) ([]ImageRef, bool) {
	if sourceGalleryID != "" && sourceGalleryID != galleryID {
		return images, false
	}
	for _, img := range images {
		if img.GalleryID != "" && img.GalleryID != galleryID {
			return images, false
		}
	}
	return MoveImage(images, draggedID, targetID)
}

// ImageIDs lists the ids of images in order.
func ImageIDs(images []ImageRef) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	return ids
}

// DenseOrder maps every id to its 0-based position in ids.
func DenseOrder(ids []string) map[string]int {
	positions := make(map[string]int, len(ids))
	for index, id := range ids {
		positions[id] = index
	}
	return positions
}

// IndexOf returns the position of id in ids, or -1.
func IndexOf(ids []string, id string) int {
	for index, candidate := range ids {
		if candidate == id {
			return index
		}
	}
	return -1
}

// SameMembers reports whether a and b hold the same ids, ignoring order.
func SameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}

func indexOfImage(images []ImageRef, id string) int {
	for index, img := range images {
		if img.ID == id {
			return index
		}
	}
	return -1
}
