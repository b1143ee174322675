package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rediet/portfolio/pkg/auth"
	"github.com/rediet/portfolio/pkg/logger"
)

type Handlers struct {
	Page    *PageHandler
	Profile *ProfileHandler
	Admin   *AdminHandler
	RSS     *RSSHandler

	// Document is optional; without it the profile document route is absent.
	Document *ProfileDocumentHandler
}

func NewRouter(h Handlers, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log), ErrorMiddleware(log))

	router.GET("/", h.Page.Index)
	router.POST("/contact", h.Page.Contact)
	router.POST("/theme/toggle", h.Page.ToggleTheme)
	router.GET("/feed.xml", h.RSS.GenerateRSS)
	if h.Document != nil {
		router.GET(ProfileDocumentPath, h.Document.Serve)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/profile", h.Profile.GetProfile)

		admin := api.Group("/admin")
		admin.Use(AuthMiddleware(jwtSvc, log))
		{
			if h.Profile.saveUseCase != nil {
				admin.PUT("/profile", h.Profile.UpdateProfile)
			}
			admin.DELETE("/repos/:username", h.Admin.InvalidateRepos)
			if h.Admin.countUseCase != nil {
				admin.GET("/views", h.Admin.CountViews)
			}
		}
	}

	return router
}
