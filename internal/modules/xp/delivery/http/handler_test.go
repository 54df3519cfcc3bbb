package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"anoa.com/learnquest/internal/mocks"
	xpDto "anoa.com/learnquest/internal/modules/xp/dto"
	xpService "anoa.com/learnquest/internal/modules/xp/service"
	"anoa.com/learnquest/pkg/ratelimiter"
	"anoa.com/learnquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, userID uuid.UUID) (*gin.Engine, *mocks.XPService) {
	gin.SetMode(gin.TestMode)

	svc := mocks.NewXPService(t)
	h := NewXPHandler(svc, ratelimiter.New(nil), 10*time.Second)

	r := gin.New()
	r.POST("/api/modules/:module_id/complete", func(c *gin.Context) {
		c.Set(response.ContextUserID, userID.String())
		c.Next()
	}, h.CompleteModule)
	return r, svc
}

func post(r *gin.Engine, moduleID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/modules/"+moduleID+"/complete", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCompleteModule_Created(t *testing.T) {
	userID := uuid.New()
	r, svc := setupRouter(t, userID)

	svc.On("Award", mock.Anything, userID, xpService.SourceModule, "go-basics").Return(&xpDto.AwardResult{
		Source: xpService.SourceModule, Awarded: 50, XPTotal: 550, Level: 3, Tier: "Silver", TierChanged: true,
	}, nil).Once()

	w := post(r, "go-basics")
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data xpDto.AwardResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 550, body.Data.XPTotal)
	assert.True(t, body.Data.TierChanged)
}

func TestCompleteModule_DailyCap(t *testing.T) {
	userID := uuid.New()
	r, svc := setupRouter(t, userID)

	svc.On("Award", mock.Anything, userID, xpService.SourceModule, "go-basics").
		Return(nil, xpService.ErrDailyCapReached).Once()

	w := post(r, "go-basics")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCompleteModule_InvalidModuleID(t *testing.T) {
	r, _ := setupRouter(t, uuid.New())

	w := post(r, strings.Repeat("m", 65))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
