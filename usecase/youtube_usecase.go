package usecase

import (
	"context"
	"time"

	"youtube-manager/domain/apperror"
	"youtube-manager/domain/dto"
	"youtube-manager/domain/model"
	"youtube-manager/domain/repository"
	"youtube-manager/infrastructure/logger"

	"github.com/google/uuid"
	"google.golang.org/api/youtube/v3"
)

// IVideoUseCase defines the operations available on the managed video
type IVideoUseCase interface {
	GetVideoDetails(ctx context.Context) (*youtube.Video, error)
	UpdateVideoDetails(ctx context.Context, req *dto.VideoUpdateRequest) (*youtube.Video, error)
	GetVideoComments(ctx context.Context) ([]*youtube.CommentThread, error)
}

// VideoUseCase binds the gateway to the single configured video and runs
// the auth gate immediately before every remote call.
type VideoUseCase struct {
	gate        repository.IAuthGate
	youtubeRepo repository.IYouTube
	videoID     string
	publishers  []repository.IVideoEventPublisher
	now         func() time.Time
}

// NewVideoUseCase creates a new video use case instance
func NewVideoUseCase(gate repository.IAuthGate, youtubeRepo repository.IYouTube, videoID string) *VideoUseCase {
	return &VideoUseCase{
		gate:        gate,
		youtubeRepo: youtubeRepo,
		videoID:     videoID,
		now:         time.Now,
	}
}

// WithPublisher adds a sink for update events (fluent)
func (u *VideoUseCase) WithPublisher(publisher repository.IVideoEventPublisher) *VideoUseCase {
	u.publishers = append(u.publishers, publisher)
	return u
}

func (u *VideoUseCase) prepare(op string) error {
	if err := u.gate.Check(); err != nil {
		return err
	}
	if u.videoID == "" {
		return apperror.New(apperror.KindConfiguration, op, "managed video ID is not configured")
	}
	return nil
}

// GetVideoDetails returns snippet, statistics and status of the managed video
func (u *VideoUseCase) GetVideoDetails(ctx context.Context) (*youtube.Video, error) {
	if err := u.prepare("video.details"); err != nil {
		return nil, err
	}
	video, err := u.youtubeRepo.FetchVideo(ctx, u.videoID, model.VideoDetailParts)
	if err != nil {
		return nil, err
	}
	title := "[No Title]"
	if video.Snippet != nil && video.Snippet.Title != "" {
		title = video.Snippet.Title
	}
	logger.GetLogger().WithFields(map[string]interface{}{"videoId": u.videoID, "title": title}).Info("Fetched video details")
	return video, nil
}

// UpdateVideoDetails merges title/description into the managed video
func (u *VideoUseCase) UpdateVideoDetails(ctx context.Context, req *dto.VideoUpdateRequest) (*youtube.Video, error) {
	if err := u.prepare("video.update"); err != nil {
		return nil, err
	}
	updated, err := u.youtubeRepo.MergeUpdateVideo(ctx, u.videoID, req)
	if err != nil {
		return nil, err
	}
	logger.GetLogger().WithFields(map[string]interface{}{"videoId": u.videoID, "title": updated.Snippet.Title}).Info("Updated video details")
	u.publishUpdated(ctx, updated, req.Fields())
	return updated, nil
}

// GetVideoComments returns the newest comment threads of the managed video
func (u *VideoUseCase) GetVideoComments(ctx context.Context) ([]*youtube.CommentThread, error) {
	if err := u.prepare("video.comments"); err != nil {
		return nil, err
	}
	threads, err := u.youtubeRepo.ListComments(ctx, u.videoID)
	if err != nil {
		return nil, err
	}
	logger.GetLogger().WithFields(map[string]interface{}{"videoId": u.videoID, "count": len(threads)}).Info("Fetched comment threads")
	return threads, nil
}

// publishUpdated announces the change; failures are logged and never
// fail the update that already happened.
func (u *VideoUseCase) publishUpdated(ctx context.Context, video *youtube.Video, fields []string) {
	if len(u.publishers) == 0 {
		return
	}
	event := &model.VideoUpdatedEvent{
		ID:          uuid.NewString(),
		VideoID:     u.videoID,
		Title:       video.Snippet.Title,
		Description: video.Snippet.Description,
		CategoryID:  video.Snippet.CategoryId,
		Fields:      fields,
		UpdatedAt:   u.now().UTC(),
	}
	for _, publisher := range u.publishers {
		serverID, err := publisher.PublishVideoUpdated(ctx, event)
		if err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{"videoId": u.videoID, "error": err}).Warn("Failed to publish video update event")
			continue
		}
		logger.GetLogger().WithFields(map[string]interface{}{"videoId": u.videoID, "eventId": event.ID, "serverId": serverID}).Debug("Published video update event")
	}
}
