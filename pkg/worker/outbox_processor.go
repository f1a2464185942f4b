package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
	"github.com/jwalitptl/quickmed-api/pkg/logger"
	"github.com/jwalitptl/quickmed-api/pkg/messaging"
	"github.com/jwalitptl/quickmed-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
	// RetryAttempts caps publish attempts per event before it is marked failed.
	RetryAttempts int
	// RetryDelay is the first backoff step; it doubles on each retry.
	RetryDelay time.Duration
	Channel    string
}

// OutboxProcessor relays outbox events to the broker. Each poll claims a
// batch inside one transaction so concurrent workers never publish the same
// event twice.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.MessageBroker
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.MessageBroker,
	config OutboxProcessorConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) (*OutboxProcessor, error) {
	if config.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be greater than 0")
	}
	if config.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be greater than 0")
	}
	if config.RetryAttempts <= 0 {
		return nil, fmt.Errorf("retry attempts must be greater than 0")
	}
	if config.RetryDelay <= 0 {
		return nil, fmt.Errorf("retry delay must be greater than 0")
	}
	if config.Channel == "" {
		config.Channel = messaging.ChannelAppointments
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}, nil
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("Starting outbox processor", "channel", p.config.Channel)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error(err, "Failed to process events")
			}
		}
	}
}

// ProcessBatch publishes one batch of due events and records the outcome
// of each.
func (p *OutboxProcessor) ProcessBatch(ctx context.Context) error {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	return p.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		events, err := p.repo.GetPendingEventsWithLock(ctx, tx, p.config.BatchSize)
		if err != nil {
			p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "error").Inc()
			return err
		}
		p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "success").Inc()

		for _, event := range events {
			if err := p.processEvent(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

// processEvent only returns store errors; publish failures are recorded on
// the event itself.
func (p *OutboxProcessor) processEvent(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	msg := messaging.Message{
		ID:      event.ID.String(),
		Type:    event.EventType,
		Payload: event.Payload,
	}

	pubErr := p.broker.Publish(ctx, p.config.Channel, msg)
	if pubErr == nil {
		p.metrics.OutboxEventsProcessed.Inc()
		if err := p.repo.UpdateStatusTx(ctx, tx, event.ID, model.OutboxStatusProcessed, nil, nil); err != nil {
			p.metrics.DatabaseOperations.WithLabelValues("update_event_status", "error").Inc()
			return err
		}
		return nil
	}

	errStr := pubErr.Error()
	status := model.OutboxStatusRetry
	var retryAt *time.Time
	if event.RetryCount+1 >= p.config.RetryAttempts {
		status = model.OutboxStatusFailed
		p.metrics.OutboxEventsFailed.Inc()
		p.logger.Error(pubErr, "Giving up on event",
			"event_id", event.ID.String(),
			"event_type", event.EventType,
			"attempts", event.RetryCount+1)
	} else {
		at := p.now().Add(p.backoff(event.RetryCount))
		retryAt = &at
		p.metrics.OutboxRetries.WithLabelValues(event.EventType).Inc()
		p.logger.Warn("Publish failed, will retry",
			"event_id", event.ID.String(),
			"event_type", event.EventType,
			"error", errStr,
			"retry_at", at)
	}

	if err := p.repo.UpdateStatusTx(ctx, tx, event.ID, status, &errStr, retryAt); err != nil {
		p.metrics.DatabaseOperations.WithLabelValues("update_event_status", "error").Inc()
		return err
	}
	return nil
}

func (p *OutboxProcessor) backoff(attempt int) time.Duration {
	if attempt > 10 {
		attempt = 10
	}
	return p.config.RetryDelay << attempt
}
