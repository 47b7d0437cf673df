package repository

import (
	"context"

	"youtube-manager/domain/dto"
	"youtube-manager/domain/model"

	"google.golang.org/api/youtube/v3"
)

// IYouTube defines the operations proxied against the remote platform.
// Implementations classify every failure into an *apperror.Error.
type IYouTube interface {
	// FetchVideo returns the single video with the requested parts verbatim.
	FetchVideo(ctx context.Context, videoID string, parts []string) (*youtube.Video, error)
	// MergeUpdateVideo reads the current snippet, overlays the request and
	// writes the whole snippet back.
	MergeUpdateVideo(ctx context.Context, videoID string, req *dto.VideoUpdateRequest) (*youtube.Video, error)
	// ListComments returns the newest comment threads; never nil on success.
	ListComments(ctx context.Context, videoID string) ([]*youtube.CommentThread, error)
}

// ICredentialStore holds the process-wide OAuth2 credentials.
type ICredentialStore interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (model.Credentials, error)
	Status() model.AuthStatus
}

// IAuthGate guards protected operations.
type IAuthGate interface {
	Check() error
}

// IVideoEventPublisher announces video changes to downstream consumers.
type IVideoEventPublisher interface {
	PublishVideoUpdated(ctx context.Context, event *model.VideoUpdatedEvent) (string, error)
}
