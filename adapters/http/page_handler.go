package http

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/adapters/document"
	"github.com/rediet/portfolio/internal/application/service"
	pageUC "github.com/rediet/portfolio/internal/application/usecase/page"
	profileUC "github.com/rediet/portfolio/internal/application/usecase/profile"
	"github.com/rediet/portfolio/internal/application/usecase/theme"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

const (
	HeaderColorScheme = "Sec-CH-Prefers-Color-Scheme"
	publishTimeout    = 2 * time.Second
)

// PageHandler serves the portfolio page and the two form posts it carries.
type PageHandler struct {
	buildUseCase   *pageUC.BuildPageUseCase
	profileUseCase *profileUC.LoadProfileUseCase
	themes         *theme.Controller
	doc            *document.Template
	publisher      service.EventPublisher
	secureCookies  bool
	logger         logger.Logger
}

func NewPageHandler(
	buildUC *pageUC.BuildPageUseCase,
	loadProfileUC *profileUC.LoadProfileUseCase,
	themes *theme.Controller,
	doc *document.Template,
	publisher service.EventPublisher,
	secureCookies bool,
	log logger.Logger,
) *PageHandler {
	return &PageHandler{
		buildUseCase:   buildUC,
		profileUseCase: loadProfileUC,
		themes:         themes,
		doc:            doc,
		publisher:      publisher,
		secureCookies:  secureCookies,
		logger:         log,
	}
}

// systemTheme reads the client hint, a structured header string like "dark".
func systemTheme(c *gin.Context) string {
	return strings.Trim(strings.TrimSpace(c.GetHeader(HeaderColorScheme)), `"`)
}

func (h *PageHandler) Index(c *gin.Context) {
	c.Header("Accept-CH", HeaderColorScheme)
	c.Header("Vary", HeaderColorScheme+", Cookie")
	c.Header("Cache-Control", "no-store")

	out := h.buildUseCase.Execute(c.Request.Context(), pageUC.BuildPageInput{
		ThemeStore:  NewCookieStore(c, h.secureCookies),
		SystemTheme: systemTheme(c),
	})

	var buf bytes.Buffer
	if err := h.doc.Render(&buf, out.Page); err != nil {
		c.Error(apperror.NewInternal("failed to render page", err))
		return
	}

	h.publishView(c, out)
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *PageHandler) publishView(c *gin.Context, out *pageUC.BuildPageOutput) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), publishTimeout)
	defer cancel()

	err := h.publisher.PublishPageViewed(ctx, service.PageViewedEvent{
		RequestID: GetRequestID(c),
		Username:  out.Username,
		Theme:     out.Page.Theme,
		Outcome:   string(out.Page.Outcome),
		At:        time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("Failed to publish page view", err, zap.String("request_id", GetRequestID(c)))
	}
}

// Contact answers the contact form with a redirect to a prefilled mailto URL.
func (h *PageHandler) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid contact form", err))
		return
	}

	loaded, err := h.profileUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	target := pageUC.ComposeContact(loaded.Profile.Email, pageUC.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), publishTimeout)
	defer cancel()
	if err := h.publisher.PublishContactComposed(ctx, service.ContactComposedEvent{
		RequestID: GetRequestID(c),
		Name:      strings.TrimSpace(req.Name),
		At:        time.Now().UTC(),
	}); err != nil {
		h.logger.Error("Failed to publish contact event", err, zap.String("request_id", GetRequestID(c)))
	}

	c.Redirect(http.StatusSeeOther, target)
}

// ToggleTheme flips the stored theme and sends the visitor back.
func (h *PageHandler) ToggleTheme(c *gin.Context) {
	ctx := c.Request.Context()
	store := NewCookieStore(c, h.secureCookies)

	current := h.themes.Resolve(ctx, store, systemTheme(c))
	applied := h.themes.Toggle(ctx, store, current)
	h.logger.Debug("Theme toggled", zap.String("theme", string(applied.Theme)))

	c.Redirect(http.StatusSeeOther, backTo(c))
}

// backTo returns the Referer's path when it points at this host, else "/".
func backTo(c *gin.Context) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Host != c.Request.Host || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
