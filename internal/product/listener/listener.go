package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventProductSaved = "ProductSaved"

// Spec event results recorded in metrics.
const (
	resultApplied = "applied"
	resultInvalid = "invalid"
	resultSkipped = "skipped"
	resultFailed  = "failed"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// SpecListener keeps product specs in sync with ProductSaved events.
type SpecListener struct {
	consumer MessageReader
	uc       product.UseCase
	metrics  *metrics.Metrics
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewSpecListener(consumer MessageReader, uc product.UseCase, m *metrics.Metrics, log logger.ZapLogger) *SpecListener {
	return &SpecListener{
		consumer: consumer,
		uc:       uc,
		metrics:  m,
		logger:   log,
		backoff:  time.Second,
	}
}

type ProductEvent struct {
	EventID   string                `json:"event_id"`
	EventType string                `json:"event_type"`
	Payload   dto.ProductSavedEvent `json:"payload"`
	Timestamp time.Time             `json:"timestamp"`
}

func (l *SpecListener) Start(ctx context.Context) {
	l.logger.Info("Starting product spec Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping product spec Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *SpecListener) processMessage(ctx context.Context, value []byte) {
	var event ProductEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal product event", zap.Error(err))
		l.metrics.RecordSpecEvent(resultInvalid)
		return
	}
	if event.EventType != EventProductSaved {
		l.metrics.RecordSpecEvent(resultSkipped)
		return
	}

	log := l.logger.With(
		zap.String("event_id", event.EventID),
		zap.Int64("product_id", event.Payload.ProductID),
	)

	_, err := l.uc.SetSpecs(ctx, event.Payload.ProductID, event.Payload.Specs)
	switch {
	case err == nil:
		log.Info("Applied product specs", zap.Int("specs", len(event.Payload.Specs)))
		l.metrics.RecordSpecEvent(resultApplied)
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrNotFound):
		// redelivery cannot fix these
		log.Warn("Rejected product specs", zap.Error(err))
		l.metrics.RecordSpecEvent(resultInvalid)
	default:
		log.Error("Failed to apply product specs", zap.Error(err))
		l.metrics.RecordSpecEvent(resultFailed)
	}
}
