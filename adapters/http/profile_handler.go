package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	profileUC "github.com/rediet/portfolio/internal/application/usecase/profile"
	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

const maxProfileBody = 2 << 20

type ProfileHandler struct {
	loadUseCase *profileUC.LoadProfileUseCase
	saveUseCase *profileUC.SaveProfileUseCase
	slug        string
	logger      logger.Logger
}

// NewProfileHandler accepts a nil save use case when profiles are not
// storage-backed; the update route is then not registered.
func NewProfileHandler(loadUC *profileUC.LoadProfileUseCase, saveUC *profileUC.SaveProfileUseCase, slug string, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		loadUseCase: loadUC,
		saveUseCase: saveUC,
		slug:        slug,
		logger:      log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	output, err := h.loadUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{Profile: output.Profile, Embedded: output.Embedded})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProfileBody))
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read request body", err))
		return
	}
	p, err := profile.Parse(body)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	slug := c.DefaultQuery("slug", h.slug)
	output, err := h.saveUseCase.Execute(c.Request.Context(), profileUC.SaveProfileInput{Slug: slug, Profile: p})
	if err != nil {
		c.Error(err)
		return
	}

	subject, _ := GetSubjectFromGinContext(c)
	h.logger.Info("Profile updated via admin API", zap.String("slug", slug), zap.String("subject", subject))
	c.JSON(http.StatusOK, ToProfileDocumentDTO(output.Document))
}
