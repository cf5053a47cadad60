package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/pkg/config"
	"redemption-service/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// KafkaSink writes audit events keyed by code id, so one code's history stays
// ordered within a partition.
type KafkaSink struct {
	writer *kafka.Writer
}

func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.AuditTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
}

func NewKafkaSink(writer *kafka.Writer) *KafkaSink {
	return &KafkaSink{writer: writer}
}

func (s *KafkaSink) Publish(ctx context.Context, events []redemption.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		value, err := json.Marshal(ev)
		if err != nil {
			return errs.Wrapf(err, "encode audit event %s", ev.ID)
		}
		carrier := headerCarrier{}
		otel.GetTextMapPropagator().Inject(ctx, &carrier)
		msgs = append(msgs, kafka.Message{
			Key:     []byte(ev.CodeID.String()),
			Value:   value,
			Headers: append(carrier.headers, kafka.Header{Key: "action", Value: []byte(ev.Action)}),
			Time:    ev.OccurredAt,
		})
	}

	if err := s.writer.WriteMessages(ctx, msgs...); err != nil {
		return errs.Wrapf(err, "write %d audit events to %s", len(msgs), s.writer.Topic)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	slog.Info("closing kafka audit writer")
	return s.writer.Close()
}

// headerCarrier adapts kafka headers to the otel propagator.
type headerCarrier struct {
	headers []kafka.Header
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, len(c.headers))
	for i, h := range c.headers {
		keys[i] = h.Key
	}
	return keys
}
