package event_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"meetspace/config"
	infraKafka "meetspace/infras/kafka"
	"meetspace/infras/kafka/mocks"
	authDto "meetspace/internal/domains/auth/model/dto"
	meetingModel "meetspace/internal/domains/meeting/model"
	"meetspace/transport/event"
)

func message(t *testing.T, value any) kafka.Message {
	t.Helper()

	raw, err := json.Marshal(value)
	require.NoError(t, err)

	return kafka.Message{Value: raw}
}

func TestHandleMeeting(t *testing.T) {
	consumer := event.New(&config.Config{}, nil)

	err := consumer.HandleMeeting(context.Background(), message(t, meetingModel.Event{
		Type:      meetingModel.EventMeetingCreated,
		MeetingID: "m1",
		RoomID:    "r1",
	}))
	assert.NoError(t, err)

	err = consumer.HandleMeeting(context.Background(), kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestHandlePasswordReset(t *testing.T) {
	consumer := event.New(&config.Config{}, nil)

	err := consumer.HandlePasswordReset(context.Background(), message(t, authDto.PasswordResetEvent{
		UserID:    "u1",
		Email:     "ana@meetspace.io",
		Token:     "3f0c6c1e-8d0a-4a53-9a38-6c3f6d1f7a10",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	assert.NoError(t, err)

	err = consumer.HandlePasswordReset(context.Background(), message(t, authDto.PasswordResetEvent{UserID: "u1"}))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topic.Meeting = "meetspace.meeting"
	cfg.Kafka.Topic.PasswordReset = "meetspace.password-reset"

	consumed := func(ctx context.Context, _ string, _ infraKafka.Handler) {
		<-ctx.Done()
	}

	client.EXPECT().Consume(gomock.Any(), "meetspace.meeting", gomock.Any()).Do(consumed)
	client.EXPECT().Consume(gomock.Any(), "meetspace.password-reset", gomock.Any()).Do(consumed)
	client.EXPECT().Close().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		event.New(cfg, client).Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}
