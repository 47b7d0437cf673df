package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"youtube-manager/domain/model"
	"youtube-manager/infrastructure/logger"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

const eventTypeVideoUpdated = "video.updated"

// NewPubSub creates a Pub/Sub client for the project.
func NewPubSub(ctx context.Context, projectID string, opts ...option.ClientOption) (*pubsub.Client, error) {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}
	return client, nil
}

// VideoEventPublisher publishes video change events to one topic.
type VideoEventPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic

	mu      sync.Mutex
	ensured bool
}

func NewVideoEventPublisher(client *pubsub.Client, topicID string) *VideoEventPublisher {
	return &VideoEventPublisher{
		client: client,
		topic:  client.Topic(topicID),
	}
}

// PublishVideoUpdated publishes the event as JSON and returns the server
// message ID. The topic is created on first use if it does not exist.
func (p *VideoEventPublisher) PublishVideoUpdated(ctx context.Context, event *model.VideoUpdatedEvent) (string, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal video updated event: %w", err)
	}
	if err := p.ensureTopic(ctx); err != nil {
		return "", err
	}

	msg := &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"eventType": eventTypeVideoUpdated,
			"videoId":   event.VideoID,
			"eventId":   event.ID,
		},
	}
	serverID, err := p.topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publish to %s: %w", p.topic.ID(), err)
	}

	logger.GetLogger().WithFields(map[string]interface{}{"serverId": serverID, "topic": p.topic.ID()}).Info("Message published")
	return serverID, nil
}

func (p *VideoEventPublisher) ensureTopic(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ensured {
		return nil
	}

	exists, err := p.topic.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check topic %s: %w", p.topic.ID(), err)
	}
	if !exists {
		logger.GetLogger().WithField("topic", p.topic.ID()).Info("Topic doesn't exist - creating it")
		if _, err := p.client.CreateTopic(ctx, p.topic.ID()); err != nil {
			return fmt.Errorf("create topic %s: %w", p.topic.ID(), err)
		}
	}
	p.ensured = true
	return nil
}

// Close flushes pending messages and releases the client.
func (p *VideoEventPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
