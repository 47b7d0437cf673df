package http

import (
	"errors"

	"youtube-manager/domain/apperror"
	"youtube-manager/domain/dto"
	"youtube-manager/infrastructure/logger"
	"youtube-manager/interfaces/middleware"

	"github.com/gin-gonic/gin"
)

// writeError serializes err with the status of its kind. Upstream, exchange
// and unclassified failures answer with fallback; other kinds carry a
// message meant for the caller.
func writeError(ctx *gin.Context, err error, fallback string) {
	status := apperror.HTTPStatus(err)
	kind := apperror.KindOf(err)
	res := dto.Res{Message: fallback, Error: string(kind)}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		res.Detail = appErr.Detail
	}
	switch kind {
	case apperror.KindUpstream, apperror.KindAuthExchange:
	case apperror.KindAuthRequired:
		res.Message = middleware.UnauthorizedMessage
	default:
		if appErr != nil && appErr.Message != "" {
			res.Message = appErr.Message
		}
	}

	fields := map[string]interface{}{
		"error":     err.Error(),
		"kind":      res.Error,
		"status":    status,
		"path":      ctx.FullPath(),
		"requestId": ctx.GetString(middleware.RequestIDKey),
	}
	if appErr != nil && appErr.Status != 0 {
		fields["upstreamStatus"] = appErr.Status
	}
	entry := logger.GetLogger().WithFields(fields)
	if status >= 500 {
		entry.Error(fallback)
	} else {
		entry.Warn(fallback)
	}

	ctx.AbortWithStatusJSON(status, res)
}
