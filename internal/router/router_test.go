package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/auth"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/handler"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/storage"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T, password string) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(dsn, logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	uploadDir := t.TempDir()
	files, err := storage.NewImageStore(uploadDir, "/galleries", 1<<20)
	if err != nil {
		t.Fatalf("failed to create image store: %v", err)
	}

	api := handler.NewAPI(gdb, files, auth.NewVerifier(password))
	r := SetupRouter(api, Options{
		SessionSecret:   "test-secret",
		UploadDir:       uploadDir,
		UploadURLPath:   "/galleries",
		UploadRateLimit: "100-M",
	})
	return r, uploadDir
}

func do(r http.Handler, method, path string, body []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, r http.Handler, password string) []*http.Cookie {
	t.Helper()
	rr := do(r, http.MethodPost, "/api/admin/auth", []byte(`{"password":"`+password+`"}`), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rr.Code, rr.Body.String())
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("login did not set a session cookie")
	}
	return cookies
}

func TestSetupRouterServesUploads(t *testing.T) {
	r, uploadDir := newTestRouter(t, "pw")

	if err := os.MkdirAll(filepath.Join(uploadDir, "g1"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := []byte("not really a png")
	if err := os.WriteFile(filepath.Join(uploadDir, "g1", "a.png"), content, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	rr := do(r, http.MethodGet, "/galleries/g1/a.png", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.String() != string(content) {
		t.Fatalf("unexpected body, got %q", rr.Body.String())
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	r, _ := newTestRouter(t, "pw")

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/galleries"},
		{http.MethodPost, "/api/galleries/reorder"},
		{http.MethodPut, "/api/settings"},
		{http.MethodPost, "/api/video-projects"},
		{http.MethodDelete, "/api/blogs/5b0f7a8e-2c1d-4a57-9e3a-0f7c4d1b2a6e"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := do(r, tt.method, tt.path, []byte(`{}`), nil)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
		})
	}
}

func TestLoginFlow(t *testing.T) {
	r, _ := newTestRouter(t, "pw")

	rr := do(r, http.MethodPost, "/api/admin/auth", []byte(`{"password":"nope"}`), nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Invalid password") {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}

	cookies := login(t, r, "pw")

	rr = do(r, http.MethodGet, "/api/admin/session", nil, cookies)
	if !strings.Contains(rr.Body.String(), `"authenticated":true`) {
		t.Fatalf("session not authenticated: %s", rr.Body.String())
	}

	rr = do(r, http.MethodPost, "/api/galleries", []byte(`{"title":"Streets"}`), cookies)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(r, http.MethodPost, "/api/admin/logout", nil, cookies)
	if rr.Code != http.StatusOK {
		t.Fatalf("logout failed: %d", rr.Code)
	}
	cleared := rr.Result().Cookies()
	rr = do(r, http.MethodPost, "/api/galleries", []byte(`{"title":"Again"}`), cleared)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rr.Code)
	}
}

func TestLoginWithoutConfiguredPassword(t *testing.T) {
	r, _ := newTestRouter(t, "")

	rr := do(r, http.MethodPost, "/api/admin/auth", []byte(`{"password":""}`), nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Server configuration error") {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestUploadIsServedBack(t *testing.T) {
	r, _ := newTestRouter(t, "pw")
	cookies := login(t, r, "pw")

	rr := do(r, http.MethodPost, "/api/galleries", []byte(`{"title":"Streets"}`), cookies)
	var gallery struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &gallery); err != nil {
		t.Fatalf("decode gallery: %v", err)
	}

	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("files", "photo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(imgBuf.Bytes())
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/galleries/"+gallery.ID+"/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	upload := httptest.NewRecorder()
	r.ServeHTTP(upload, req)
	if upload.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", upload.Code, upload.Body.String())
	}
	if upload.Header().Get("X-RateLimit-Limit") != "100" {
		t.Fatalf("missing rate limit headers")
	}

	var payload struct {
		Images []struct {
			Path string `json:"path"`
		} `json:"images"`
	}
	if err := json.Unmarshal(upload.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode upload: %v", err)
	}
	if len(payload.Images) != 1 {
		t.Fatalf("expected one image, got %d", len(payload.Images))
	}

	rr = do(r, http.MethodGet, payload.Images[0].Path, nil, nil)
	if rr.Code != http.StatusOK || !bytes.Equal(rr.Body.Bytes(), imgBuf.Bytes()) {
		t.Fatalf("uploaded file not served back: %d", rr.Code)
	}

	rr = do(r, http.MethodGet, "/api/galleries/"+gallery.ID, nil, nil)
	if !strings.Contains(rr.Body.String(), `"coverImage":"`+payload.Images[0].Path+`"`) {
		t.Fatalf("first upload should become the cover: %s", rr.Body.String())
	}
}

func TestInvalidIDIsRejected(t *testing.T) {
	r, _ := newTestRouter(t, "pw")

	rr := do(r, http.MethodGet, "/api/galleries/not-a-uuid", nil, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPingAndHealth(t *testing.T) {
	r, _ := newTestRouter(t, "pw")

	if rr := do(r, http.MethodGet, "/ping", nil, nil); rr.Code != http.StatusOK {
		t.Fatalf("ping: %d", rr.Code)
	}
	if rr := do(r, http.MethodGet, "/healthz", nil, nil); rr.Code != http.StatusOK {
		t.Fatalf("healthz: %d %s", rr.Code, rr.Body.String())
	}
}
