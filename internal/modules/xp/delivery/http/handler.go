package http

import (
	"fmt"
	"math"
	"net/http"
	"time"

	xpDto "anoa.com/learnquest/internal/modules/xp/dto"
	xpService "anoa.com/learnquest/internal/modules/xp/service"
	"anoa.com/learnquest/pkg/logger"
	"anoa.com/learnquest/pkg/ratelimiter"
	"anoa.com/learnquest/pkg/response"
	"anoa.com/learnquest/pkg/validator"
	"github.com/gin-gonic/gin"
)

const actionCompleteModule = "complete_module"

type XPHandler struct {
	service      xpService.XPService
	limiter      *ratelimiter.Limiter
	moduleWindow time.Duration
}

func NewXPHandler(service xpService.XPService, limiter *ratelimiter.Limiter, moduleWindow time.Duration) *XPHandler {
	return &XPHandler{
		service:      service,
		limiter:      limiter,
		moduleWindow: moduleWindow,
	}
}

// CompleteModule handles POST /api/modules/:module_id/complete.
func (h *XPHandler) CompleteModule(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req xpDto.CompleteModuleRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	ctx := c.Request.Context()
	allowed, err := h.limiter.Allow(ctx, userID, actionCompleteModule, h.moduleWindow)
	if err != nil {
		// Redis trouble should not block learners.
		logger.Log.Warnw("rate limiter unavailable", "error", err)
		allowed = true
	}
	if !allowed {
		ttl, _ := h.limiter.TTL(ctx, userID, actionCompleteModule)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       fmt.Sprintf("please wait %d seconds before completing another module", int(math.Ceil(ttl.Seconds()))),
			"retry_after": int(math.Ceil(ttl.Seconds())),
		})
		return
	}

	result, err := h.service.Award(ctx, userID, xpService.SourceModule, req.ModuleID)
	if err != nil {
		_ = h.limiter.Clear(ctx, userID, actionCompleteModule)
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}
