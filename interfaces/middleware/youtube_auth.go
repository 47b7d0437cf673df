package middleware

import (
	"net/http"

	"youtube-manager/domain/apperror"
	"youtube-manager/domain/dto"
	"youtube-manager/domain/repository"
	"youtube-manager/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

const UnauthorizedMessage = "Unauthorized. Please authenticate via /auth/youtube first."

// RequireYouTubeAuth rejects requests with 401 until OAuth credentials
// have been obtained through the callback.
func RequireYouTubeAuth(gate repository.IAuthGate) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := gate.Check(); err == nil {
			ctx.Next()
			return
		}

		logger.GetLogger().WithFields(map[string]interface{}{
			"path":      ctx.FullPath(),
			"requestId": ctx.GetString(RequestIDKey),
		}).Warn("Rejected request without YouTube credentials")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Res{
			Message: UnauthorizedMessage,
			Error:   string(apperror.KindAuthRequired),
		})
	}
}
