// Package expansion tracks which gallery of the showcase is open.
//
// At most one gallery is expanded at a time. The state is a single optional
// gallery id, so opening one gallery closes any other by construction.
package expansion

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultSettle matches the open/close transition of the showcase.
const DefaultSettle = 300 * time.Millisecond

// Query parameters mirrored into the shareable location.
const (
	ParamGallery = "gallery"
	ParamTab     = "tab"
)

// Tab is a section of the work page.
type Tab string

const (
	TabPhotography Tab = "photography"
	TabVideography Tab = "videography"
	TabDesign      Tab = "design"
	TabBook        Tab = "book"
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabPhotography, TabVideography, TabDesign, TabBook}

// ParseTab accepts a known tab name.
func ParseTab(raw string) (Tab, bool) {
	for _, tab := range Tabs {
		if string(tab) == raw {
			return tab, true
		}
	}
	return "", false
}

// Entry is a gallery as the controller sees it.
type Entry struct {
	ID    string
	Title string
}

// slug falls back to the id for titles without any [a-z0-9] characters.
func (e Entry) slug() string {
	if slug := Slugify(e.Title); slug != "" {
		return slug
	}
	return e.ID
}

// State is a snapshot of the controller.
type State struct {
	Expanded  bool
	GalleryID string
}

// Controller is the expand/collapse state machine.
type Controller struct {
	now    func() time.Time
	settle time.Duration

	mu         sync.Mutex
	expanded   *Entry
	tab        Tab
	lastToggle time.Time
	scrollTo   string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithSettle replaces DefaultSettle.
func WithSettle(d time.Duration) Option {
	return func(c *Controller) {
		c.settle = d
	}
}

// New returns a collapsed controller on the photography tab.
func New(opts ...Option) *Controller {
	c := &Controller{now: time.Now, settle: DefaultSettle, tab: TabPhotography}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expanded == nil {
		return State{}
	}
	return State{Expanded: true, GalleryID: c.expanded.ID}
}

// IsExpanded reports whether id is the open gallery.
func (c *Controller) IsExpanded(id string) bool {
	state := c.State()
	return state.Expanded && state.GalleryID == id
}

// Toggle collapses g when it is open and otherwise opens it, closing any
// other gallery. A call arriving before the previous transition settled is
// ignored and reported as false.
func (c *Controller) Toggle(g Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.lastToggle.IsZero() && now.Sub(c.lastToggle) < c.settle {
		return false
	}
	c.lastToggle = now

	if c.expanded != nil && c.expanded.ID == g.ID {
		c.expanded = nil
		return true
	}
	entry := g
	c.expanded = &entry
	return true
}

// Collapse closes any open gallery.
func (c *Controller) Collapse() {
	c.mu.Lock()
	c.expanded = nil
	c.mu.Unlock()
}

// Tab returns the active tab.
func (c *Controller) Tab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

// SetTab switches tabs and collapses the open gallery.
func (c *Controller) SetTab(tab Tab) {
	c.mu.Lock()
	c.tab = tab
	c.expanded = nil
	c.mu.Unlock()
}

// Location mirrors the state into query parameters.
func (c *Controller) Location() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return location(c.tab, c.expanded)
}

// LocationAfterToggle is the location a successful Toggle(g) would produce.
func (c *Controller) LocationAfterToggle(g Entry) url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expanded != nil && c.expanded.ID == g.ID {
		return location(c.tab, nil)
	}
	return location(c.tab, &g)
}

// Restore initializes the controller from a deep link. The gallery parameter
// matches either a gallery id or the slug of its title. A match expands the
// gallery and schedules a scroll to it.
func (c *Controller) Restore(values url.Values, galleries []Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tab, ok := ParseTab(values.Get(ParamTab)); ok {
		c.tab = tab
	}

	param := strings.TrimSpace(values.Get(ParamGallery))
	if param == "" {
		return false
	}
	for _, g := range galleries {
		if g.ID == param || Slugify(g.Title) == param {
			entry := g
			c.expanded = &entry
			c.scrollTo = g.ID
			return true
		}
	}
	return false
}

// ScrollTarget returns the gallery a restored deep link should scroll to.
// The target is handed out once.
func (c *Controller) ScrollTarget() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	target := c.scrollTo
	c.scrollTo = ""
	return target, target != ""
}

func location(tab Tab, expanded *Entry) url.Values {
	values := url.Values{}
	if expanded != nil {
		values.Set(ParamGallery, expanded.slug())
		return values
	}
	if tab != "" && tab != TabPhotography {
		values.Set(ParamTab, string(tab))
	}
	return values
}
