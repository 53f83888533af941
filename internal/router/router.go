package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/handler"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/middleware"
)

// SessionName is the cookie holding the admin session.
const SessionName = "portfolio_session"

// Options configures the engine around the handlers.
type Options struct {
	SessionSecret   string
	UploadDir       string
	UploadURLPath   string
	UploadRateLimit string
	CORSOrigins     []string
	SecureCookies   bool
}

// SetupRouter wires every route.
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(SessionName, store))

	if opts.UploadDir != "" {
		urlPath := "/" + strings.Trim(opts.UploadURLPath, "/")
		if urlPath == "/" {
			urlPath = "/galleries"
		}
		r.Static(urlPath, opts.UploadDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/healthz", api.HealthCheck)

	id := middleware.UUIDParam("id")

	public := r.Group("/api")
	{
		public.GET("/galleries", api.ListGalleries)
		public.GET("/galleries/:id", id, api.GetGallery)
		public.GET("/video-projects", api.ListVideoProjects)
		public.GET("/video-projects/:id", id, api.GetVideoProject)
		public.GET("/blogs", api.ListBlogs)
		public.GET("/blogs/:id", id, api.GetBlog)
		public.GET("/settings", api.GetSettings)
		public.GET("/work", api.ShowWork)
		public.GET("/video/parse", api.ParseVideoURL)

		public.POST("/admin/auth", api.Authenticate)
		public.GET("/admin/session", api.SessionStatus)
		public.POST("/admin/logout", api.Logout)
	}

	admin := r.Group("/api", handler.AuthRequired())
	{
		admin.POST("/galleries", api.CreateGallery)
		admin.POST("/galleries/reorder", api.ReorderGalleries)
		admin.PUT("/galleries/:id", id, api.UpdateGallery)
		admin.DELETE("/galleries/:id", id, api.DeleteGallery)
		admin.POST("/galleries/:id/move", id, api.MoveGallery)
		admin.POST("/galleries/:id/images", id, middleware.RateLimit(opts.UploadRateLimit), api.UploadImages)
		admin.DELETE("/galleries/:id/images", id, api.DeleteImage)
		admin.POST("/galleries/:id/images/move", id, api.MoveImage)
		admin.POST("/galleries/:id/images/reorder", id, api.ReorderImages)
		admin.PUT("/images/:id", id, api.UpdateImage)

		admin.POST("/video-projects", api.CreateVideoProject)
		admin.POST("/video-projects/reorder", api.ReorderVideoProjects)
		admin.PUT("/video-projects/:id", id, api.UpdateVideoProject)
		admin.DELETE("/video-projects/:id", id, api.DeleteVideoProject)

		admin.POST("/blogs", api.CreateBlog)
		admin.DELETE("/blogs/:id", id, api.DeleteBlog)

		admin.PUT("/settings", api.UpdateSettings)
	}

	return r
}
