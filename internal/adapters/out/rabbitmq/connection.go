// Package rabbitmq publishes integration events to a RabbitMQ exchange so
// downstream services (search indexing, analytics, seller dashboards) can
// react to order lifecycle changes.
package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Connection manages the underlying AMQP connection. Channels are not safe
// for concurrent use, so each consumer of the connection gets its own.
type Connection struct {
	conn *amqp.Connection
	url  string
}

// NewConnection dials the broker at the given URL.
func NewConnection(url string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	return &Connection{
		conn: conn,
		url:  url,
	}, nil
}

// Channel opens a fresh channel on the connection.
func (c *Connection) Channel() (*amqp.Channel, error) {
	if c.conn.IsClosed() {
		return nil, fmt.Errorf("RabbitMQ connection is closed")
	}

	channel, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return channel, nil
}

// Close closes the underlying connection and all its channels.
func (c *Connection) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
