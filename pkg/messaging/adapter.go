package messaging

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// BrokerAdapter decodes raw broker payloads into Message envelopes
type BrokerAdapter struct {
	broker Broker
	logger zerolog.Logger
}

func NewBrokerAdapter(broker Broker, logger zerolog.Logger) *BrokerAdapter {
	return &BrokerAdapter{broker: broker, logger: logger}
}

func (a *BrokerAdapter) Publish(ctx context.Context, topic string, msg Message) error {
	return a.broker.Publish(ctx, topic, msg)
}

func (a *BrokerAdapter) Close() error {
	return a.broker.Close()
}

// Subscribe runs handler for every message on topic until ctx is done or the
// broker closes the channel. Handler errors are logged and do not stop
// consumption.
func (a *BrokerAdapter) Subscribe(ctx context.Context, topic string, handler func(context.Context, Message) error) error {
	msgChan, err := a.broker.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for raw := range msgChan {
			var msg Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				a.logger.Warn().Err(err).Str("topic", topic).Msg("Dropping malformed message")
				continue
			}
			if err := handler(ctx, msg); err != nil {
				a.logger.Error().Err(err).
					Str("topic", topic).
					Str("message_id", msg.ID).
					Str("type", msg.Type).
					Msg("Message handler failed")
			}
		}
	}()

	return nil
}
