package servicebus

import (
	"context"
	"encoding/json"
	"fmt"

	"youtube-manager/domain/model"
	"youtube-manager/infrastructure/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

const subjectVideoUpdated = "video.updated"

// NewServiceBus connects to a fully qualified namespace
// (<name>.servicebus.windows.net) with the default Azure credential chain.
func NewServiceBus(namespace string) (*azservicebus.Client, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}
	client, err := azservicebus.NewClient(namespace, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create service bus client: %w", err)
	}
	return client, nil
}

type sender interface {
	SendMessage(ctx context.Context, message *azservicebus.Message, options *azservicebus.SendMessageOptions) error
	Close(ctx context.Context) error
}

// VideoEventQueue sends video change events to a Service Bus queue.
type VideoEventQueue struct {
	sender sender
	queue  string
}

// NewVideoEventQueue opens a sender for queue on client.
func NewVideoEventQueue(client *azservicebus.Client, queue string) (*VideoEventQueue, error) {
	s, err := client.NewSender(queue, nil)
	if err != nil {
		return nil, fmt.Errorf("new sender for %s: %w", queue, err)
	}
	return newVideoEventQueue(s, queue), nil
}

func newVideoEventQueue(s sender, queue string) *VideoEventQueue {
	return &VideoEventQueue{sender: s, queue: queue}
}

// PublishVideoUpdated sends the event as JSON. Service Bus has no server
// assigned id, so the event id doubles as the message id and is returned.
func (q *VideoEventQueue) PublishVideoUpdated(ctx context.Context, event *model.VideoUpdatedEvent) (string, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal video updated event: %w", err)
	}

	messageID := event.ID
	subject := subjectVideoUpdated
	contentType := "application/json"
	msg := &azservicebus.Message{
		Body:        body,
		MessageID:   &messageID,
		Subject:     &subject,
		ContentType: &contentType,
		ApplicationProperties: map[string]any{
			"videoId": event.VideoID,
		},
	}
	if err := q.sender.SendMessage(ctx, msg, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return "", fmt.Errorf("send to %s: %w", q.queue, err)
	}

	logger.GetLogger().WithFields(map[string]interface{}{"queue": q.queue, "messageId": messageID}).Info("Message sent")
	return messageID, nil
}

func (q *VideoEventQueue) Close(ctx context.Context) error {
	return q.sender.Close(ctx)
}
