package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rybalchenkov4/staffdb/internal/infrastructure/mqtt"
)

// Publisher is the subset of the MQTT client used by MQTTSink.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	QoS() byte
}

// MQTTSink publishes the report as JSON on staffdb/report/{run_id}.
type MQTTSink struct {
	pub Publisher
}

// NewMQTTSink creates a sink publishing through pub.
func NewMQTTSink(pub Publisher) *MQTTSink {
	return &MQTTSink{pub: pub}
}

// Name implements Sink.
func (s *MQTTSink) Name() string { return "mqtt" }

// Send implements Sink.
func (s *MQTTSink) Send(ctx context.Context, run *Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encoding run report: %w", err)
	}

	return s.pub.Publish(mqtt.Topics{}.Report(run.ID), payload, s.pub.QoS(), false)
}
