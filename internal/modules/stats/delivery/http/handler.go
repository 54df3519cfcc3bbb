package http

import (
	"net/http"

	statsService "anoa.com/learnquest/internal/modules/stats/service"
	"anoa.com/learnquest/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	service statsService.StatsService
}

func NewStatsHandler(service statsService.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetUserStats handles GET /api/user/stats.
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	user, err := response.GetAuthUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.service.GetUserStats(c.Request.Context(), user)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
