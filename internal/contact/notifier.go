package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/pubsub"
)

const notificationSource = "contact-form"

// Notifier forwards an accepted submission to whoever handles leads.
type Notifier interface {
	Notify(ctx context.Context, sub Submission) error
}

// NoopNotifier discards submissions; the log line is the only record.
type NoopNotifier struct{}

// Notify implements Notifier.
func (NoopNotifier) Notify(context.Context, Submission) error { return nil }

// PubSubNotifier publishes submissions as JSON messages on a Pub/Sub topic.
type PubSubNotifier struct {
	topic   *pubsub.Topic
	marshal func(any) ([]byte, error)
}

// NewPubSubNotifier constructs a Pub/Sub backed notifier.
func NewPubSubNotifier(topic *pubsub.Topic) (*PubSubNotifier, error) {
	if topic == nil {
		return nil, errors.New("pubsub notifier: topic is required")
	}
	return &PubSubNotifier{
		topic:   topic,
		marshal: json.Marshal,
	}, nil
}

// Notify publishes sub and waits for the server to acknowledge it.
func (n *PubSubNotifier) Notify(ctx context.Context, sub Submission) error {
	if n == nil || n.topic == nil {
		return errors.New("pubsub notifier: not initialised")
	}

	data, err := n.marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	attrs := map[string]string{"source": notificationSource}
	setAttr(attrs, "submissionId", sub.ID)
	setAttr(attrs, "locale", sub.Locale)

	result := n.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attrs,
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish submission: %w", err)
	}
	return nil
}

func setAttr(attrs map[string]string, key string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		attrs[key] = v
	}
}
