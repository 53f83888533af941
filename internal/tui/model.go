// Package tui is a terminal browser for the public showcase.
package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/auth"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/client"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/expansion"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
)

// requestTimeout bounds every call the browser makes.
const requestTimeout = 15 * time.Second

// WorkSource loads the showcase.
type WorkSource interface {
	Work(ctx context.Context, query url.Values) (client.WorkView, error)
}

// Options configures a Model.
type Options struct {
	Work WorkSource
	// Query is the deep link the browser opens with.
	Query url.Values
	// Controller defaults to expansion.New().
	Controller *expansion.Controller
	// Board enables gallery reordering. Nil browses read-only.
	Board *ordering.Board
	// Gate, when set and not yet authenticated, shows a login prompt first.
	Gate       *auth.Gate
	AfterLogin func() error
}

type workMsg struct {
	view client.WorkView
	err  error
}

type loginMsg struct{ err error }

type moveMsg struct {
	moved bool
	err   error
}

// Model is the bubbletea model of the browser.
type Model struct {
	opts       Options
	controller *expansion.Controller
	lightbox   expansion.Lightbox

	password textinput.Model
	loggedIn bool

	view     client.WorkView
	loaded   bool
	restored bool
	cursor   int
	status   string
	err      error
}

// New builds a Model.
func New(opts Options) *Model {
	controller := opts.Controller
	if controller == nil {
		controller = expansion.New()
	}

	input := textinput.New()
	input.Placeholder = "admin password"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'

	m := &Model{opts: opts, controller: controller, password: input, loggedIn: true}
	if opts.Gate != nil && opts.Gate.Mount() != auth.StatusAuthenticated {
		m.loggedIn = false
		m.password.Focus()
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if !m.loggedIn {
		return textinput.Blink
	}
	return m.load(m.opts.Query)
}

func (m *Model) load(query url.Values) tea.Cmd {
	source := m.opts.Work
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		view, err := source.Work(ctx, query)
		return workMsg{view: view, err: err}
	}
}

func (m *Model) reload() tea.Cmd {
	return m.load(url.Values{expansion.ParamTab: {string(m.controller.Tab())}})
}

func (m *Model) submit(password string) tea.Cmd {
	gate, after := m.opts.Gate, m.opts.AfterLogin
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := gate.Submit(ctx, password); err != nil {
			return loginMsg{err: err}
		}
		if after != nil {
			if err := after(); err != nil {
				_ = gate.Logout()
				return loginMsg{err: err}
			}
		}
		return loginMsg{}
	}
}

func (m *Model) moveGallery(index int, dir ordering.Direction) tea.Cmd {
	board := m.opts.Board
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := board.Refresh(ctx); err != nil {
			return moveMsg{err: err}
		}
		moved, err := board.MoveGallery(ctx, index, dir)
		return moveMsg{moved: moved, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workMsg:
		m.err = msg.err
		if msg.err == nil {
			m.apply(msg.view)
		}
		return m, nil

	case loginMsg:
		if msg.err != nil {
			m.status = m.opts.Gate.Message()
			if m.status == "" {
				m.status = msg.err.Error()
			}
			return m, nil
		}
		m.loggedIn = true
		m.status = ""
		m.password.Reset()
		m.password.Blur()
		return m, m.load(m.opts.Query)

	case moveMsg:
		switch {
		case msg.err != nil:
			m.status = "reorder failed: " + msg.err.Error()
		case !msg.moved:
			m.status = "already at the edge"
		default:
			m.status = "moved"
		}
		return m, m.reload()

	case tea.KeyMsg:
		if !m.loggedIn {
			return m.updateLogin(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		if m.opts.Gate.Submitting() {
			return m, nil
		}
		m.status = "checking…"
		return m, m.submit(m.password.Value())
	}
	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.lightbox.IsOpen() {
		switch msg.String() {
		case "left", "h":
			m.lightbox.Prev()
		case "right", "l", " ":
			m.lightbox.Next()
		case "esc", "q", "enter":
			m.lightbox.Close()
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Galleries)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.toggle()
	case "esc":
		m.controller.Collapse()
	case "tab":
		m.nextTab()
		return m, m.reload()
	case "o":
		m.openLightbox()
	case "K":
		if m.opts.Board != nil && m.controller.Tab() == expansion.TabPhotography {
			return m, m.moveGallery(m.cursor, ordering.Up)
		}
	case "J":
		if m.opts.Board != nil && m.controller.Tab() == expansion.TabPhotography {
			return m, m.moveGallery(m.cursor, ordering.Down)
		}
	}
	return m, nil
}

// apply installs a freshly loaded view. The first load restores the deep
// link and puts the cursor on its gallery.
func (m *Model) apply(view client.WorkView) {
	selected := ""
	if m.cursor < len(m.view.Galleries) {
		selected = m.view.Galleries[m.cursor].ID
	}
	m.view = view
	m.loaded = true

	if !m.restored {
		m.restored = true
		m.controller.Restore(m.opts.Query, m.entries())
		if target, ok := m.controller.ScrollTarget(); ok {
			selected = target
		}
	}

	m.cursor = 0
	for i, g := range view.Galleries {
		if g.ID == selected {
			m.cursor = i
		}
	}
}

func (m *Model) entries() []expansion.Entry {
	out := make([]expansion.Entry, 0, len(m.view.Galleries))
	for _, g := range m.view.Galleries {
		out = append(out, expansion.Entry{ID: g.ID, Title: g.Title})
	}
	return out
}

func (m *Model) toggle() {
	if m.cursor >= len(m.view.Galleries) {
		return
	}
	g := m.view.Galleries[m.cursor]
	if !m.controller.Toggle(expansion.Entry{ID: g.ID, Title: g.Title}) {
		m.status = "…"
		return
	}
	m.status = ""
}

func (m *Model) nextTab() {
	current := m.controller.Tab()
	for i, tab := range expansion.Tabs {
		if tab == current {
			m.controller.SetTab(expansion.Tabs[(i+1)%len(expansion.Tabs)])
			return
		}
	}
	m.controller.SetTab(expansion.TabPhotography)
}

// openLightbox starts at the cover of the expanded gallery.
func (m *Model) openLightbox() {
	state := m.controller.State()
	if !state.Expanded {
		return
	}
	for _, g := range m.view.Galleries {
		if g.ID != state.GalleryID {
			continue
		}
		paths := galleryPaths(g)
		if len(paths) > 0 {
			m.lightbox.Open(paths, paths[0])
		}
		return
	}
}

func galleryPaths(g client.WorkGallery) []string {
	var paths []string
	if g.Cover != nil {
		paths = append(paths, g.Cover.Path)
	}
	for _, img := range g.OtherImages {
		paths = append(paths, img.Path)
	}
	return paths
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("portfolio") + "\n\n")

	if !m.loggedIn {
		b.WriteString("Admin login\n\n" + m.password.View() + "\n\n")
		if m.status != "" {
			b.WriteString(errorStyle.Render(m.status) + "\n")
		}
		b.WriteString(mutedStyle.Render("enter to submit, esc to quit"))
		return b.String()
	}

	if current, ok := m.lightbox.Current(); ok {
		return b.String() + lightboxStyle.Render(current) + "\n" + mutedStyle.Render("←/→ browse, esc close")
	}

	b.WriteString(m.renderTabs() + "\n")
	if location := m.controller.Location().Encode(); location != "" {
		b.WriteString(mutedStyle.Render("?"+location) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	case !m.loaded:
		b.WriteString(mutedStyle.Render("loading…") + "\n")
	case m.controller.Tab() == expansion.TabVideography:
		b.WriteString(m.renderVideos())
	case m.controller.Tab() == expansion.TabPhotography:
		b.WriteString(m.renderGalleries())
	default:
		b.WriteString(mutedStyle.Render("nothing here yet") + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	help := "↑/↓ select, enter expand, o lightbox, tab switch, q quit"
	if m.opts.Board != nil {
		help += ", J/K reorder"
	}
	b.WriteString("\n" + mutedStyle.Render(help))
	return b.String()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(expansion.Tabs))
	for _, tab := range expansion.Tabs {
		style := tabStyle
		if tab == m.controller.Tab() {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(string(tab)))
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderGalleries() string {
	if len(m.view.Galleries) == 0 {
		return mutedStyle.Render("no galleries") + "\n"
	}
	var b strings.Builder
	for i, g := range m.view.Galleries {
		marker := "▸"
		if m.controller.IsExpanded(g.ID) {
			marker = "▾"
		}
		line := fmt.Sprintf("%s %s %s", marker, g.Title, mutedStyle.Render(fmt.Sprintf("(%d)", g.ImageCount)))
		if i == m.cursor {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")

		if !m.controller.IsExpanded(g.ID) {
			continue
		}
		for j, path := range galleryPaths(g) {
			label := path
			if j == 0 {
				label += mutedStyle.Render("  cover")
			}
			b.WriteString(imageStyle.Render(label) + "\n")
		}
	}
	return b.String()
}

func (m *Model) renderVideos() string {
	if len(m.view.Videos) == 0 {
		return mutedStyle.Render("no video projects") + "\n"
	}
	var b strings.Builder
	for _, v := range m.view.Videos {
		embed := "-"
		if v.EmbedURL != nil {
			embed = *v.EmbedURL
		}
		b.WriteString(fmt.Sprintf("  %s %s\n%s\n", v.Title, mutedStyle.Render("["+v.Service+"]"), imageStyle.Render(embed)))
	}
	return b.String()
}
