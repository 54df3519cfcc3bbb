package response

import (
	"errors"
	"net/http"

	"anoa.com/learnquest/pkg/apperror"
	"anoa.com/learnquest/pkg/logger"
	"anoa.com/learnquest/pkg/supabase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserID holds the authenticated user id as a string.
	ContextUserID = "user_id"
	// ContextAuthUser holds the verified *supabase.User.
	ContextAuthUser = "auth_user"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// GetAuthUser retrieves the verified identity placed by the auth middleware.
func GetAuthUser(c *gin.Context) (*supabase.User, error) {
	value, exists := c.Get(ContextAuthUser)
	if !exists {
		return nil, apperror.ErrUnauthorized
	}

	user, ok := value.(*supabase.User)
	if !ok || user == nil {
		return nil, apperror.ErrUnauthorized
	}

	return user, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		logger.Log.Errorw("internal error", "path", c.FullPath(), "error", err)
	}

	message := err.Error()
	var appErr *apperror.AppError
	if code == http.StatusInternalServerError && !errors.As(err, &appErr) {
		// Unclassified errors may leak driver details.
		message = apperror.ErrInternal.Error()
	}

	c.JSON(code, gin.H{"error": message})
}
