package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rediet/portfolio/internal/application/usecase/repos"
	"github.com/rediet/portfolio/internal/application/usecase/views"
	"github.com/rediet/portfolio/pkg/logger"
)

type AdminHandler struct {
	invalidateUseCase *repos.InvalidateUseCase
	countUseCase      *views.CountViewsUseCase
	logger            logger.Logger
}

// NewAdminHandler accepts a nil count use case when no view counter is
// configured.
func NewAdminHandler(invalidateUC *repos.InvalidateUseCase, countUC *views.CountViewsUseCase, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		invalidateUseCase: invalidateUC,
		countUseCase:      countUC,
		logger:            log,
	}
}

func (h *AdminHandler) InvalidateRepos(c *gin.Context) {
	if err := h.invalidateUseCase.Execute(c.Request.Context(), c.Param("username")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) CountViews(c *gin.Context) {
	output, err := h.countUseCase.Execute(c.Request.Context(), views.CountViewsInput{Date: c.Query("date")})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
