package http

import (
	"net/http"

	"youtube-manager/domain/apperror"
	"youtube-manager/domain/dto"
	"youtube-manager/usecase"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/youtube/v3"
)

// IYouTubeHandler defines the HTTP handlers for the managed video
type IYouTubeHandler interface {
	GetVideoDetails(ctx *gin.Context)
	UpdateVideoDetails(ctx *gin.Context)
	GetVideoComments(ctx *gin.Context)
}

// YouTubeHandler implements the YouTube HTTP handlers
type YouTubeHandler struct {
	videoUseCase usecase.IVideoUseCase
}

// NewYouTubeHandler creates a new YouTube handler instance
func NewYouTubeHandler(videoUseCase usecase.IVideoUseCase) IYouTubeHandler {
	return &YouTubeHandler{videoUseCase: videoUseCase}
}

// GetVideoDetails handles GET /api/video/details
func (h *YouTubeHandler) GetVideoDetails(ctx *gin.Context) {
	video, err := h.videoUseCase.GetVideoDetails(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err, "Failed to fetch video details.")
		return
	}
	ctx.JSON(http.StatusOK, video)
}

// UpdateVideoDetails handles PUT /api/video/details
func (h *YouTubeHandler) UpdateVideoDetails(ctx *gin.Context) {
	var req dto.VideoUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, apperror.Wrap(apperror.KindValidation, "video.update", "Bad Request: invalid JSON body", err), "Failed to update video details.")
		return
	}

	video, err := h.videoUseCase.UpdateVideoDetails(ctx.Request.Context(), &req)
	if err != nil {
		writeError(ctx, err, "Failed to update video details.")
		return
	}
	ctx.JSON(http.StatusOK, video)
}

// GetVideoComments handles GET /api/video/comments
func (h *YouTubeHandler) GetVideoComments(ctx *gin.Context) {
	threads, err := h.videoUseCase.GetVideoComments(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err, "Failed to fetch video comments.")
		return
	}
	if threads == nil {
		threads = []*youtube.CommentThread{}
	}
	ctx.JSON(http.StatusOK, threads)
}
