package kafka_test

import (
	"context"
	"testing"
	"time"

	"meetspace/config"
	"meetspace/infras/kafka"
	"meetspace/infras/otel/mocks"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	MeetingID string `json:"meeting_id"`
	Status    string `json:"status"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "room-1", Value: event{MeetingID: "m1", Status: "confirmed"}}

	raw, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("room-1"), raw.Key)
	assert.JSONEq(t, `{"meeting_id":"m1","status":"confirmed"}`, string(raw.Value))

	decoded, err := kafka.Decode[event](raw)
	require.NoError(t, err)
	assert.Equal(t, event{MeetingID: "m1", Status: "confirmed"}, decoded)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := kafka.Decode[event](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestNew_DisabledIsNoop(t *testing.T) {
	cfg := &config.Config{}
	client := kafka.New(cfg, mocks.NewOtel())

	assert.NoError(t, client.SendMessages(context.Background(), "meetspace.meeting", kafka.Message{Key: "k", Value: "v"}))
	assert.NoError(t, client.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		client.Consume(ctx, "meetspace.meeting", func(context.Context, kafkaGo.Message) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("noop consumer did not stop after context cancellation")
	}
}
