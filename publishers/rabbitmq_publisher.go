package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"estate-api/dto"

	"github.com/streadway/amqp"
)

// ListingPublisher publica los cambios de publicaciones para otros servicios
type ListingPublisher interface {
	Publish(ctx context.Context, event dto.ListingEvent) error
	Close() error
}

// RabbitMQPublisher publica eventos en un exchange fanout
// Cada instancia de la API tiene su propia cola atada a ese exchange
type RabbitMQPublisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	origin     string
	mu         sync.Mutex
}

// NewRabbitMQPublisher conecta con RabbitMQ y declara el exchange
func NewRabbitMQPublisher(rabbitURL, exchange, origin string) (*RabbitMQPublisher, error) {
	log.Printf("Connecting publisher to RabbitMQ")

	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareExchange(ch, exchange); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("Exchange '%s' declared successfully", exchange)

	return &RabbitMQPublisher{
		connection: conn,
		channel:    ch,
		exchange:   exchange,
		origin:     origin,
	}, nil
}

// Publish serializa el evento y lo envía al exchange
func (p *RabbitMQPublisher) Publish(ctx context.Context, event dto.ListingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if event.Origin == "" {
		event.Origin = p.origin
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.Publish(
		p.exchange, // exchange
		"",         // routing key (fanout la ignora)
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("error publishing event: %w", err)
	}

	log.Printf("Published event: Action=%s, ListingID=%s", event.Action, event.ListingID)
	return nil
}

// Close cierra el channel y la conexión
func (p *RabbitMQPublisher) Close() error {
	var errs []error

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing channel: %w", err))
		}
	}
	if p.connection != nil {
		if err := p.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ publisher: %v", errs)
	}
	return nil
}

// NoopPublisher se usa cuando no hay RabbitMQ configurado
type NoopPublisher struct{}

// Publish solo deja registro del evento
func (NoopPublisher) Publish(_ context.Context, event dto.ListingEvent) error {
	log.Printf("Event not published (messaging disabled): Action=%s, ListingID=%s", event.Action, event.ListingID)
	return nil
}

// Close no hace nada
func (NoopPublisher) Close() error {
	return nil
}

// declareExchange declara el exchange fanout durable
func declareExchange(ch *amqp.Channel, exchange string) error {
	err := ch.ExchangeDeclare(
		exchange, // name
		"fanout", // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	return nil
}
