package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/youtube/v3"

	"youtube-manager/domain/apperror"
	"youtube-manager/domain/dto"
	"youtube-manager/domain/model"
	"youtube-manager/usecase"
)

// Mock implementations
type MockGate struct {
	mock.Mock
}

func (m *MockGate) Check() error {
	args := m.Called()
	return args.Error(0)
}

type MockYouTube struct {
	mock.Mock
}

func (m *MockYouTube) FetchVideo(ctx context.Context, videoID string, parts []string) (*youtube.Video, error) {
	args := m.Called(ctx, videoID, parts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*youtube.Video), args.Error(1)
}

func (m *MockYouTube) MergeUpdateVideo(ctx context.Context, videoID string, req *dto.VideoUpdateRequest) (*youtube.Video, error) {
	args := m.Called(ctx, videoID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*youtube.Video), args.Error(1)
}

func (m *MockYouTube) ListComments(ctx context.Context, videoID string) ([]*youtube.CommentThread, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*youtube.CommentThread), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishVideoUpdated(ctx context.Context, event *model.VideoUpdatedEvent) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func authRequired() error {
	return apperror.New(apperror.KindAuthRequired, "auth.gate", "not authenticated")
}

func TestVideoUseCase_GateBlocksEveryOperation(t *testing.T) {
	gate := new(MockGate)
	repo := new(MockYouTube)
	gate.On("Check").Return(authRequired())

	uc := usecase.NewVideoUseCase(gate, repo, "vid-1")

	_, err := uc.GetVideoDetails(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrAuthRequired))

	_, err = uc.UpdateVideoDetails(context.Background(), &dto.VideoUpdateRequest{Title: strPtr("X")})
	assert.True(t, errors.Is(err, apperror.ErrAuthRequired))

	_, err = uc.GetVideoComments(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrAuthRequired))

	// The gateway must never be reached
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "FetchVideo", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MergeUpdateVideo", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ListComments", mock.Anything, mock.Anything)
	gate.AssertNumberOfCalls(t, "Check", 3)
}

func TestVideoUseCase_MissingVideoID(t *testing.T) {
	gate := new(MockGate)
	repo := new(MockYouTube)
	gate.On("Check").Return(nil)

	uc := usecase.NewVideoUseCase(gate, repo, "")

	_, err := uc.GetVideoDetails(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConfiguration))
	repo.AssertNotCalled(t, "FetchVideo", mock.Anything, mock.Anything, mock.Anything)
}

func TestVideoUseCase_GetVideoDetails(t *testing.T) {
	gate := new(MockGate)
	repo := new(MockYouTube)
	video := &youtube.Video{Id: "vid-1", Snippet: &youtube.VideoSnippet{Title: "Hello"}}

	gate.On("Check").Return(nil).Once()
	repo.On("FetchVideo", mock.Anything, "vid-1", []string{"snippet", "statistics", "status"}).
		Return(video, nil).
		Once()

	uc := usecase.NewVideoUseCase(gate, repo, "vid-1")
	got, err := uc.GetVideoDetails(context.Background())

	require.NoError(t, err)
	assert.Same(t, video, got)
	gate.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestVideoUseCase_GetVideoDetails_NotFound(t *testing.T) {
	gate := new(MockGate)
	repo := new(MockYouTube)

	gate.On("Check").Return(nil).Once()
	repo.On("FetchVideo", mock.Anything, "vid-1", mock.Anything).
		Return(nil, apperror.New(apperror.KindNotFound, "videos.list", "video not found")).
		Once()

	uc := usecase.NewVideoUseCase(gate, repo, "vid-1")
	_, err := uc.GetVideoDetails(context.Background())

	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	repo.AssertExpectations(t)
}

func TestVideoUseCase_UpdateVideoDetails_PublishesEvent(t *testing.T) {
	gate := new(MockGate)
	repo := new(MockYouTube)
	publisher := new(MockPublisher)
	req := &dto.VideoUpdateRequest{Title: strPtr("New Title")}
	updated := &youtube.Video{Id: "vid-1", Snippet: &youtube.VideoSnippet{
		Title:       "New Title",
		Description: "Original Description",
		CategoryId:  "22",
	}}

	gate.On("Check").Return(nil).Once()
	repo.On("MergeUpdateVideo", mock.Anything, "vid-1", req).Return(updated, nil).Once()
	publisher.On("PublishVideoUpdated", mock.Anything, mock.MatchedBy(func(e *model.VideoUpdatedEvent) bool {
		return e.VideoID == "vid-1" &&
			e.Title == "New Title" &&
			e.CategoryID == "22" &&
			assert.ObjectsAreEqual([]string{"title"}, e.Fields) &&
			e.ID != ""
	})).Return("server-1", nil).Once()

	uc := usecase.NewVideoUseCase(gate, repo, "vid-1").WithPublisher(publisher)
	got, err := uc.UpdateVideoDetails(context.Background(), req)

	require.NoError(t, err)
	assert.Same(t, updated, got)
	gate.AssertExpectations(t)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestVideoUseCase_UpdateVideoDetails_PublishFailureIsIgnored(t *testing.T) {
	gate := new(MockGate)
	repo := new(MockYouTube)
	publisher := new(MockPublisher)
	req := &dto.VideoUpdateRequest{Description: strPtr("New")}
	updated := &youtube.Video{Id: "vid-1", Snippet: &youtube.VideoSnippet{Description: "New", CategoryId: "22"}}

	gate.On("Check").Return(nil).Once()
	repo.On("MergeUpdateVideo", mock.Anything, "vid-1", req).Return(updated, nil).Once()
	publisher.On("PublishVideoUpdated", mock.Anything, mock.Anything).Return("", assert.AnError).Once()

	uc := usecase.NewVideoUseCase(gate, repo, "vid-1").WithPublisher(publisher)
	got, err := uc.UpdateVideoDetails(context.Background(), req)

	require.NoError(t, err)
	assert.Same(t, updated, got)
	publisher.AssertExpectations(t)
}

func TestVideoUseCase_UpdateVideoDetails_FansOutToEveryPublisher(t *testing.T) {
	gate := new(MockGate)
	repo := new(MockYouTube)
	failing := new(MockPublisher)
	healthy := new(MockPublisher)
	req := &dto.VideoUpdateRequest{Title: strPtr("T")}
	updated := &youtube.Video{Id: "vid-1", Snippet: &youtube.VideoSnippet{Title: "T", CategoryId: "22"}}

	gate.On("Check").Return(nil).Once()
	repo.On("MergeUpdateVideo", mock.Anything, "vid-1", req).Return(updated, nil).Once()
	failing.On("PublishVideoUpdated", mock.Anything, mock.Anything).Return("", assert.AnError).Once()
	healthy.On("PublishVideoUpdated", mock.Anything, mock.Anything).Return("msg-1", nil).Once()

	uc := usecase.NewVideoUseCase(gate, repo, "vid-1").WithPublisher(failing).WithPublisher(healthy)
	_, err := uc.UpdateVideoDetails(context.Background(), req)

	require.NoError(t, err)
	failing.AssertExpectations(t)
	healthy.AssertExpectations(t)
}

func TestVideoUseCase_UpdateVideoDetails_ErrorSkipsPublish(t *testing.T) {
	gate := new(MockGate)
	repo := new(MockYouTube)
	publisher := new(MockPublisher)
	req := &dto.VideoUpdateRequest{Title: strPtr("X")}

	gate.On("Check").Return(nil).Once()
	repo.On("MergeUpdateVideo", mock.Anything, "vid-1", req).
		Return(nil, apperror.New(apperror.KindSchema, "videos.update", "categoryId missing")).
		Once()

	uc := usecase.NewVideoUseCase(gate, repo, "vid-1").WithPublisher(publisher)
	_, err := uc.UpdateVideoDetails(context.Background(), req)

	assert.True(t, errors.Is(err, apperror.ErrSchema))
	publisher.AssertNotCalled(t, "PublishVideoUpdated", mock.Anything, mock.Anything)
}

func TestVideoUseCase_GetVideoComments(t *testing.T) {
	gate := new(MockGate)
	repo := new(MockYouTube)
	threads := []*youtube.CommentThread{}

	gate.On("Check").Return(nil).Once()
	repo.On("ListComments", mock.Anything, "vid-1").Return(threads, nil).Once()

	uc := usecase.NewVideoUseCase(gate, repo, "vid-1")
	got, err := uc.GetVideoComments(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	repo.AssertExpectations(t)
}
