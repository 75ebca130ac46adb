package contact

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func TestPubSubNotifierPublishesSubmission(t *testing.T) {
	ctx := context.Background()
	srv := pstest.NewServer()
	defer srv.Close()

	client, err := pubsub.NewClient(ctx, "test-project",
		option.WithEndpoint(srv.Addr),
		option.WithoutAuthentication(),
		option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	if err != nil {
		t.Fatalf("pubsub.NewClient: %v", err)
	}
	defer func() {
		_ = client.Close()
	}()

	topic, err := client.CreateTopic(ctx, "contact-submissions")
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}

	notifier, err := NewPubSubNotifier(topic)
	if err != nil {
		t.Fatalf("NewPubSubNotifier: %v", err)
	}

	sub := Submission{
		ID:              "5f0c3a4e-6a7b-4c1d-8e9f-0a1b2c3d4e5f",
		Name:            "Jana",
		Email:           "jana@example.cz",
		Message:         "Potřebujeme nový web.",
		Locale:          "cs",
		ClientTimestamp: 1741946390000,
		ReceivedAt:      time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	if err := notifier.Notify(ctx, sub); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	messages := srv.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}

	var payload Submission
	if err := json.Unmarshal(messages[0].Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.ID != sub.ID || payload.Email != sub.Email {
		t.Fatalf("unexpected payload %#v", payload)
	}
	if attr := messages[0].Attributes["submissionId"]; attr != sub.ID {
		t.Fatalf("expected submissionId attribute, got %q", attr)
	}
	if attr := messages[0].Attributes["source"]; attr != "contact-form" {
		t.Fatalf("expected source attribute, got %q", attr)
	}
}

func TestPubSubNotifierOmitsEmptyLocale(t *testing.T) {
	ctx := context.Background()
	srv := pstest.NewServer()
	defer srv.Close()

	client, err := pubsub.NewClient(ctx, "test-project",
		option.WithEndpoint(srv.Addr),
		option.WithoutAuthentication(),
		option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	if err != nil {
		t.Fatalf("pubsub.NewClient: %v", err)
	}
	defer func() {
		_ = client.Close()
	}()

	topic, err := client.CreateTopic(ctx, "contact-submissions")
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	notifier, err := NewPubSubNotifier(topic)
	if err != nil {
		t.Fatalf("NewPubSubNotifier: %v", err)
	}

	if err := notifier.Notify(ctx, Submission{ID: "abc"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	messages := srv.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if _, ok := messages[0].Attributes["locale"]; ok {
		t.Fatalf("locale attribute should not be present")
	}
}

func TestNewPubSubNotifierRequiresTopic(t *testing.T) {
	if _, err := NewPubSubNotifier(nil); err == nil {
		t.Fatal("expected error for nil topic")
	}
}
