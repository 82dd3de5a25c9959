package rabbitmq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

const (
	PatientEventsExchange  = "patient_events_exchange"
	PatientRegisteredQueue = "patient_registered_queue"
	PatientRegisteredKey   = "patient.registered"
)

func dial(host string, port int, user, password string) (*amqp091.Connection, *amqp091.Channel, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}

// declareTopology is shared by the publisher and the consumer so either side
// can start first.
func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		PatientEventsExchange, // name
		"direct",              // type
		true,                  // durable
		false,                 // auto-delete
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		return err
	}

	_, err = channel.QueueDeclare(
		PatientRegisteredQueue, // name
		true,                   // durable
		false,                  // auto-delete
		false,                  // exclusive
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		return err
	}

	return channel.QueueBind(
		PatientRegisteredQueue, // queue name
		PatientRegisteredKey,   // routing key
		PatientEventsExchange,  // exchange
		false,                  // no-wait
		nil,                    // arguments
	)
}
