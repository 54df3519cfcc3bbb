package http

import (
	"net/http"

	leaderboardDto "anoa.com/learnquest/internal/modules/leaderboard/dto"
	leaderboardService "anoa.com/learnquest/internal/modules/leaderboard/service"
	"anoa.com/learnquest/pkg/response"
	"anoa.com/learnquest/pkg/validator"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	service leaderboardService.LeaderboardService
}

func NewLeaderboardHandler(service leaderboardService.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var query leaderboardDto.LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}
	if query.Limit == 0 {
		query.Limit = leaderboardService.DefaultLimit
	}

	leaderboard, err := h.service.GetLeaderboard(c.Request.Context(), query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": leaderboard})
}
