package expansion

// Lightbox steps through the images of the expanded gallery. Navigation wraps
// around at both ends.
type Lightbox struct {
	images []string
	index  int
	open   bool
}

// Open shows imageID out of images. It reports false when the image is not
// part of the list.
func (l *Lightbox) Open(images []string, imageID string) bool {
	for i, id := range images {
		if id == imageID {
			l.images = append([]string(nil), images...)
			l.index = i
			l.open = true
			return true
		}
	}
	return false
}

// Close hides the lightbox.
func (l *Lightbox) Close() {
	l.open = false
	l.images = nil
	l.index = 0
}

// IsOpen reports whether an image is shown.
func (l *Lightbox) IsOpen() bool {
	return l.open
}

// Current returns the shown image id.
func (l *Lightbox) Current() (string, bool) {
	if !l.open || len(l.images) == 0 {
		return "", false
	}
	return l.images[l.index], true
}

// Next moves to the following image.
func (l *Lightbox) Next() {
	l.step(1)
}

// Prev moves to the preceding image.
func (l *Lightbox) Prev() {
	l.step(-1)
}

func (l *Lightbox) step(delta int) {
	if !l.open || len(l.images) == 0 {
		return
	}
	n := len(l.images)
	l.index = (l.index + delta + n) % n
}
