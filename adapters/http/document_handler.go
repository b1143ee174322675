package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/pkg/logger"
	"github.com/rediet/portfolio/web"
)

// ProfileDocumentPath is where the raw profile document is published. The
// default HTTP profile source points here.
const ProfileDocumentPath = "/data/cv.json"

// ProfileDocumentHandler publishes the profile JSON the page is built from.
type ProfileDocumentHandler struct {
	path   string
	logger logger.Logger
}

// NewProfileDocumentHandler serves the file at path, re-read on every request.
// An empty path serves the built-in sample profile.
func NewProfileDocumentHandler(path string, log logger.Logger) *ProfileDocumentHandler {
	if path == "" {
		log.Warn("No profile document configured, serving the built-in sample", zap.String("route", ProfileDocumentPath))
	}
	return &ProfileDocumentHandler{path: path, logger: log}
}

func (h *ProfileDocumentHandler) Serve(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	if h.path == "" {
		c.Data(http.StatusOK, "application/json; charset=utf-8", web.ProfileJSON)
		return
	}
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.File(h.path)
}
