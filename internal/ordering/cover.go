package ordering

// ResolveCover returns the image shown as the gallery cover: the one whose
// path equals cover, else the first image. ok is false for an empty gallery.
func ResolveCover(images []ImageRef, cover string) (ImageRef, bool) {
	if len(images) == 0 {
		return ImageRef{}, false
	}
	if cover != "" {
		for _, img := range images {
			if img.Path == cover {
				return img, true
			}
		}
	}
	return images[0], true
}

// OtherImages lists every image except the resolved cover.
func OtherImages(images []ImageRef, cover string) []ImageRef {
	resolved, ok := ResolveCover(images, cover)
	if !ok {
		return nil
	}
	others := make([]ImageRef, 0, len(images)-1)
	for _, img := range images {
		if img.ID != resolved.ID {
			others = append(others, img)
		}
	}
	return others
}

// CoverAfterDelete returns the cover path once deletedPath is gone. remaining
// is in stored order. When the cover itself was deleted, the first remaining
// image takes over; with nothing left the result is empty. A gallery without
// an explicit cover keeps none.
func CoverAfterDelete(remaining []ImageRef, current, deletedPath string) string {
	if current != deletedPath {
		return current
	}
	if len(remaining) == 0 {
		return ""
	}
	return remaining[0].Path
}

// CoverAfterUpload keeps an existing cover and otherwise promotes the first
// uploaded image.
func CoverAfterUpload(current string, uploaded []ImageRef) string {
	if current != "" || len(uploaded) == 0 {
		return current
	}
	return uploaded[0].Path
}
