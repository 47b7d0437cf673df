package pubsub_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"youtube-manager/domain/model"
	"youtube-manager/infrastructure/pubsub"
)

func newPublisher(t *testing.T) (*pubsub.VideoEventPublisher, *pstest.Server) {
	t.Helper()
	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client, err := pubsub.NewPubSub(context.Background(), "test-project", option.WithGRPCConn(conn))
	require.NoError(t, err)

	publisher := pubsub.NewVideoEventPublisher(client, "video-updates")
	t.Cleanup(func() { _ = publisher.Close() })
	return publisher, srv
}

func TestVideoEventPublisher_CreatesTopicAndPublishes(t *testing.T) {
	publisher, srv := newPublisher(t)

	event := &model.VideoUpdatedEvent{
		ID:          "event-1",
		VideoID:     "vid-1",
		Title:       "New Title",
		Description: "Original Description",
		CategoryID:  "22",
		Fields:      []string{"title"},
		UpdatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	serverID, err := publisher.PublishVideoUpdated(context.Background(), event)
	require.NoError(t, err)
	assert.NotEmpty(t, serverID)

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "video.updated", msgs[0].Attributes["eventType"])
	assert.Equal(t, "vid-1", msgs[0].Attributes["videoId"])

	var got model.VideoUpdatedEvent
	require.NoError(t, json.Unmarshal(msgs[0].Data, &got))
	assert.Equal(t, *event, got)
}

func TestVideoEventPublisher_ReusesTopic(t *testing.T) {
	publisher, srv := newPublisher(t)

	for i := 0; i < 2; i++ {
		_, err := publisher.PublishVideoUpdated(context.Background(), &model.VideoUpdatedEvent{ID: "e", VideoID: "vid-1"})
		require.NoError(t, err)
	}
	assert.Len(t, srv.Messages(), 2)
}
