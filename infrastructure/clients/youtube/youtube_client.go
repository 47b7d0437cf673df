package youtube

import (
	"context"
	"fmt"
	"net/http"

	"youtube-manager/domain/apperror"
	"youtube-manager/domain/dto"
	"youtube-manager/domain/model"
	"youtube-manager/domain/repository"
	"youtube-manager/infrastructure/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	// CommentPageSize is the number of comment threads fetched per call.
	CommentPageSize = 50
	// CommentOrder orders comment threads newest first.
	CommentOrder = "time"
)

// Client performs the proxied YouTube Data API calls. Every request is
// authorized with whatever token the source returns at call time, so a
// later code exchange takes effect without rebuilding the client.
type Client struct {
	service *youtube.Service
}

// NewYouTubeClient creates a client authorizing requests from source.
// Extra options are passed to the YouTube service (tests use
// option.WithEndpoint to point it at a fake server).
func NewYouTubeClient(ctx context.Context, source oauth2.TokenSource, opts ...option.ClientOption) (repository.IYouTube, error) {
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: source,
			Base:   http.DefaultTransport,
		},
	}
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// FetchVideo retrieves one video with the requested parts.
func (c *Client) FetchVideo(ctx context.Context, videoID string, parts []string) (*youtube.Video, error) {
	const op = "videos.list"
	if len(parts) == 0 {
		parts = model.VideoDetailParts
	}

	logger.GetLogger().WithFields(map[string]interface{}{"videoId": videoID, "parts": parts}).Info("Fetching video details")
	response, err := c.service.Videos.List(parts).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, Classify(op, err)
	}
	if len(response.Items) == 0 {
		return nil, apperror.New(apperror.KindNotFound, op, "Video not found.")
	}
	return response.Items[0], nil
}

// MergeUpdateVideo updates title and/or description of a video.
//
// videos.update replaces the whole snippet, so the current snippet is read
// first and every field the caller did not address is written back
// unchanged. categoryId is required on every write and is always carried
// over from the current state; if it cannot be read the update is refused.
func (c *Client) MergeUpdateVideo(ctx context.Context, videoID string, req *dto.VideoUpdateRequest) (*youtube.Video, error) {
	const op = "videos.update"
	if req.Empty() {
		return nil, apperror.New(apperror.KindValidation, op, "Bad Request: Please provide a title or description to update.")
	}

	current, err := c.FetchVideo(ctx, videoID, []string{"snippet"})
	if err != nil {
		return nil, err
	}
	if current.Snippet == nil || current.Snippet.CategoryId == "" {
		logger.GetLogger().WithField("videoId", videoID).Error("Fetched snippet has no categoryId")
		return nil, &apperror.Error{
			Kind:    apperror.KindSchema,
			Op:      op,
			Message: "Failed to retrieve essential video data (categoryId) for update.",
			Detail:  "snippet.categoryId missing from videos.list response",
		}
	}

	body := &youtube.Video{
		Id:      videoID,
		Snippet: mergeSnippet(current.Snippet, req),
	}

	logger.GetLogger().WithFields(map[string]interface{}{"videoId": videoID, "fields": req.Fields()}).Info("Updating video snippet")
	updated, err := c.service.Videos.Update([]string{"snippet"}, body).Context(ctx).Do()
	if err != nil {
		return nil, Classify(op, err)
	}
	if updated == nil || updated.Snippet == nil {
		return nil, &apperror.Error{
			Kind:    apperror.KindUpstream,
			Op:      op,
			Message: "update returned no snippet",
			Detail:  "videos.update response did not echo the updated snippet",
		}
	}
	return updated, nil
}

func mergeSnippet(current *youtube.VideoSnippet, req *dto.VideoUpdateRequest) *youtube.VideoSnippet {
	merged := &youtube.VideoSnippet{
		Title:           current.Title,
		Description:     current.Description,
		CategoryId:      current.CategoryId,
		Tags:            current.Tags,
		DefaultLanguage: current.DefaultLanguage,
	}
	if req.HasTitle() {
		merged.Title = *req.Title
	}
	if req.HasDescription() {
		merged.Description = *req.Description
	}
	return merged
}

// ListComments returns the newest comment threads with their replies.
func (c *Client) ListComments(ctx context.Context, videoID string) ([]*youtube.CommentThread, error) {
	const op = "commentThreads.list"

	logger.GetLogger().WithField("videoId", videoID).Info("Fetching comment threads")
	response, err := c.service.CommentThreads.List([]string{"snippet", "replies"}).
		VideoId(videoID).
		MaxResults(CommentPageSize).
		Order(CommentOrder).
		Context(ctx).
		Do()
	if err != nil {
		return nil, Classify(op, err)
	}
	if len(response.Items) == 0 {
		return []*youtube.CommentThread{}, nil
	}
	return response.Items, nil
}
