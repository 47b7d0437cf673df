package http

import (
	"fmt"
	"net/http"
	"strings"

	"youtube-manager/domain/apperror"
	"youtube-manager/domain/dto"
	"youtube-manager/domain/repository"
	"youtube-manager/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// IYouTubeAuthHandler defines the interface for YouTube authentication handlers
type IYouTubeAuthHandler interface {
	GetAuthURL(ctx *gin.Context)
	HandleCallback(ctx *gin.Context)
	Status(ctx *gin.Context)
}

// YouTubeAuthHandler drives the authorization-code flow against the
// credential store.
type YouTubeAuthHandler struct {
	store repository.ICredentialStore
}

// NewYouTubeAuthHandler creates a new YouTube auth handler
func NewYouTubeAuthHandler(store repository.ICredentialStore) IYouTubeAuthHandler {
	return &YouTubeAuthHandler{store: store}
}

// GetAuthURL handles GET /auth/youtube by redirecting to Google's consent page
func (h *YouTubeAuthHandler) GetAuthURL(ctx *gin.Context) {
	logger.GetLogger().Info("Redirecting to Google for YouTube authentication")
	ctx.Redirect(http.StatusFound, h.store.AuthURL())
}

// HandleCallback handles GET /auth/google/callback
func (h *YouTubeAuthHandler) HandleCallback(ctx *gin.Context) {
	var query dto.OAuthCallbackQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		writeError(ctx, apperror.Wrap(apperror.KindValidation, "oauth2.callback", "Authentication failed: invalid callback parameters", err), "Authentication failed")
		return
	}

	// Check for OAuth error first
	if query.Error != "" {
		detail := query.Error
		if query.ErrorDescription != "" {
			detail = fmt.Sprintf("%s: %s", query.Error, query.ErrorDescription)
		}
		err := &apperror.Error{
			Kind:    apperror.KindValidation,
			Op:      "oauth2.callback",
			Message: "Authentication failed: provider returned an error",
			Detail:  detail,
		}
		writeError(ctx, err, "Authentication failed")
		return
	}

	if strings.TrimSpace(query.Code) == "" {
		writeError(ctx, apperror.New(apperror.KindValidation, "oauth2.callback", "Authentication failed: No code provided"), "Authentication failed")
		return
	}

	logger.GetLogger().Info("Received code from Google, exchanging for tokens")
	if _, err := h.store.Exchange(ctx.Request.Context(), query.Code); err != nil {
		writeError(ctx, err, "Authentication failed during token exchange.")
		return
	}

	logger.GetLogger().Info("YouTube authentication successful, tokens stored")
	ctx.JSON(http.StatusOK, dto.Res{Message: "Authentication successful! You can close this page."})
}

// Status handles GET /auth/youtube/tokens
func (h *YouTubeAuthHandler) Status(ctx *gin.Context) {
	if h.store.Status().Authenticated {
		ctx.JSON(http.StatusOK, dto.AuthStatusResponse{
			Authenticated: true,
			Message:       "Tokens are present (in memory)",
		})
		return
	}
	ctx.JSON(http.StatusUnauthorized, dto.AuthStatusResponse{
		Authenticated: false,
		Message:       "No tokens found. Please authenticate via /auth/youtube",
	})
}
