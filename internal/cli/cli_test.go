package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/auth"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/client"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/handler"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/logger"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/router"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	gormlogger "gorm.io/gorm/logger"
)

func newServer(t *testing.T) *httptest.Server {
	return newServerWithCookies(t, false)
}

func newServerWithCookies(t *testing.T, secure bool) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Discard()

	dsn := fmt.Sprintf("file:cli-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(dsn, gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	files, err := storage.NewImageStore(t.TempDir(), "/galleries", 1<<20)
	require.NoError(t, err)
	srv := httptest.NewServer(router.SetupRouter(handler.NewAPI(gdb, files, auth.NewVerifier("pw")), router.Options{
		SessionSecret:   "test-secret",
		UploadRateLimit: "100-M",
		SecureCookies:   secure,
	}))
	t.Cleanup(srv.Close)
	return srv
}

type harness struct {
	t       *testing.T
	server  string
	session string
}

func newHarness(t *testing.T) *harness {
	return &harness{
		t:       t,
		server:  newServer(t).URL,
		session: filepath.Join(t.TempDir(), "session.yaml"),
	}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetArgs(append([]string{"--session", h.session, "--server", h.server}, args...))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, out)
	return out
}

func TestLoginPersistsSession(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "login", "-p", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), auth.MessageInvalidPassword)

	out := h.mustRun("login", "-p", "pw")
	assert.Contains(t, out, "logged in")

	raw, err := os.ReadFile(h.session)
	require.NoError(t, err)
	var saved sessionData
	require.NoError(t, yaml.Unmarshal(raw, &saved))
	assert.Equal(t, h.server, saved.Server)
	assert.True(t, saved.Authenticated)
	assert.NotEmpty(t, saved.Token)

	assert.Contains(t, h.mustRun("status"), "session: authenticated")
	assert.Contains(t, h.mustRun("login", "-p", "pw"), "already logged in")
}

func TestLoginFailsWhenCookieIsNotKept(t *testing.T) {
	h := &harness{
		t:       t,
		server:  newServerWithCookies(t, true).URL,
		session: filepath.Join(t.TempDir(), "session.yaml"),
	}

	out, err := h.run("", "login", "-p", "pw")
	require.Error(t, err, out)
	assert.ErrorIs(t, err, errNoSessionCookie)
	assert.NotContains(t, out, "logged in")

	session, err := LoadSession(h.session)
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
	assert.Contains(t, h.mustRun("status"), "session: unauthenticated")
}

func TestLoginReadsPasswordFromStdin(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("pw\n", "login")
	require.NoError(t, err, out)
	assert.Contains(t, out, "logged in")
}

func TestGalleryCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "-p", "pw")

	h.mustRun("galleries", "create", "-t", "Streets")
	h.mustRun("galleries", "create", "-t", "Portraits", "--downloadable")

	out := h.mustRun("galleries", "list")
	assert.Less(t, strings.Index(out, "Streets"), strings.Index(out, "Portraits"))

	session, err := LoadSession(h.session)
	require.NoError(t, err)
	api := mustClient(t, session)
	galleries, err := api.Galleries(context.Background())
	require.NoError(t, err)
	require.Len(t, galleries, 2)

	assert.Contains(t, h.mustRun("galleries", "move", galleries[1].ID, "up"), "moved")
	assert.Contains(t, h.mustRun("galleries", "move", galleries[1].ID, "up"), "already at the top")

	out = h.mustRun("galleries", "list")
	assert.Less(t, strings.Index(out, "Portraits"), strings.Index(out, "Streets"))
}

func TestLogoutForgetsSession(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "-p", "pw")
	assert.Contains(t, h.mustRun("logout"), "logged out")

	session, err := LoadSession(h.session)
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
	assert.Empty(t, session.Token())

	_, err = h.run("", "galleries", "create", "-t", "Nope")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestContentCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "-p", "pw")

	out := h.mustRun("videos", "parse", "https://youtu.be/dQw4w9WgXcQ")
	assert.Contains(t, out, "service: youtube")

	_, err := h.run("", "videos", "parse", "https://example.com")
	assert.Error(t, err)

	h.mustRun("videos", "add", "-t", "Reel", "-u", "https://vimeo.com/76979871", "-d", "Showreel")
	assert.Contains(t, h.mustRun("videos", "list"), "vimeo")

	public, err := client.New(h.server)
	require.NoError(t, err)
	projects, err := public.VideoProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)

	out = h.mustRun("videos", "edit", projects[0].ID, "-t", "Reel 2025")
	assert.Contains(t, out, "updated Reel 2025")
	projects, err = public.VideoProjects(context.Background())
	require.NoError(t, err)
	require.NotNil(t, projects[0].Description)
	assert.Equal(t, "Showreel", *projects[0].Description, "fields without a flag are kept")

	out, err = h.run("# Hello\n\nFirst post.", "blogs", "add", "-t", "Hello")
	require.NoError(t, err, out)
	assert.Contains(t, h.mustRun("blogs", "list"), "Hello")

	h.mustRun("settings", "set", "--instagram", "https://instagram.com/me")
	out = h.mustRun("settings", "set", "--youtube", "https://youtube.com/@me")
	assert.Contains(t, out, "https://instagram.com/me", "unset flags keep their value")
	assert.Contains(t, out, "https://youtube.com/@me")
}

func TestSessionFileServerSwitchDropsToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	s, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultServer, s.Server())

	require.NoError(t, s.SetToken("abc"))
	require.NoError(t, s.SetAuthenticated(true))
	assert.True(t, s.Authenticated())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	s.SetServer("http://other:3000")
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
}

func mustClient(t *testing.T, s *SessionFile) *client.Client {
	t.Helper()
	c, err := client.New(s.Server())
	require.NoError(t, err)
	c.SetSessionToken(s.Token())
	return c
}
