package event

import (
	"context"
	"fmt"
	"sync"

	"meetspace/config"
	"meetspace/infras/kafka"
	authDto "meetspace/internal/domains/auth/model/dto"
	meetingModel "meetspace/internal/domains/meeting/model"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumer follows the topics the API publishes to.
type Consumer struct {
	Config *config.Config
	Kafka  kafka.Client
}

func New(cfg *config.Config, client kafka.Client) *Consumer {
	return &Consumer{
		Config: cfg,
		Kafka:  client,
	}
}

// Run blocks until ctx is done and every topic reader has stopped.
func (c *Consumer) Run(ctx context.Context) {
	var wg sync.WaitGroup

	subscriptions := map[string]kafka.Handler{
		c.Config.Kafka.Topic.Meeting:       c.HandleMeeting,
		c.Config.Kafka.Topic.PasswordReset: c.HandlePasswordReset,
	}

	for topic, handler := range subscriptions {
		wg.Add(1)

		go func() {
			defer wg.Done()

			log.Info().Str("topic", topic).Msg("Consuming topic")
			c.Kafka.Consume(ctx, topic, handler)
		}()
	}

	wg.Wait()

	if err := c.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}
}

// HandleMeeting writes the booking audit trail.
func (c *Consumer) HandleMeeting(_ context.Context, msg kafkaGo.Message) error {
	evt, err := kafka.Decode[meetingModel.Event](msg)
	if err != nil {
		return fmt.Errorf("failed to decode meeting event: %w", err)
	}

	log.Info().
		Str("event", evt.Type).
		Str("meeting_id", evt.MeetingID).
		Str("room_id", evt.RoomID).
		Str("date", evt.Date).
		Str("start_time", evt.StartTime).
		Str("end_time", evt.EndTime).
		Str("status", evt.Status).
		Str("actor", evt.Actor).
		Time("occurred_at", evt.OccurredAt).
		Msg("meeting audit")

	return nil
}

// HandlePasswordReset hands the reset token to the notification channel.
// Mail delivery is not wired yet, the token only reaches debug logs.
func (c *Consumer) HandlePasswordReset(_ context.Context, msg kafkaGo.Message) error {
	evt, err := kafka.Decode[authDto.PasswordResetEvent](msg)
	if err != nil {
		return fmt.Errorf("failed to decode password reset event: %w", err)
	}

	if evt.Email == "" || evt.Token == "" {
		return fmt.Errorf("password reset event for user %q is incomplete", evt.UserID)
	}

	log.Info().Str("user_id", evt.UserID).Str("email", evt.Email).Time("expires_at", evt.ExpiresAt).Msg("password reset requested")
	log.Debug().Str("email", evt.Email).Str("token", evt.Token).Msg("password reset token")

	return nil
}
