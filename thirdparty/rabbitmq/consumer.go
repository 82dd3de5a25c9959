package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/muhammadheryan/patient-registration/model"
	"github.com/muhammadheryan/patient-registration/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// HandlerFunc processes one registration event. Returning an error requeues it.
type HandlerFunc func(ctx context.Context, event model.PatientRegisteredEvent) error

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(host string, port int, user, password string) (*Consumer, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Consumer{conn: conn, channel: channel}, nil
}

// Start consumes registration events until ctx is done or the channel closes.
// The returned channel is closed when consumption stops.
func (c *Consumer) Start(ctx context.Context, handle HandlerFunc) (<-chan struct{}, error) {
	// Set QoS to 1 - process one message at a time
	if err := c.channel.Qos(1, 0, false); err != nil {
		return nil, err
	}

	msgs, err := c.channel.Consume(
		PatientRegisteredQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.process(ctx, msg, handle)
			}
		}
	}()

	return stopped, nil
}

func (c *Consumer) process(ctx context.Context, msg amqp091.Delivery, handle HandlerFunc) {
	event, err := decodeEvent(msg.Body)
	if err != nil {
		logger.Error("[Consumer] err decode message", zap.Error(err))
		_ = msg.Ack(false)
		return
	}

	if err := handle(ctx, event); err != nil {
		logger.Error("[Consumer] err handle event", zap.Uint64("patient_id", event.PatientID), zap.Error(err))
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
}

func decodeEvent(body []byte) (model.PatientRegisteredEvent, error) {
	var event model.PatientRegisteredEvent
	err := json.Unmarshal(body, &event)
	return event, err
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
