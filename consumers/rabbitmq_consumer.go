package consumers

import (
	"encoding/json"
	"fmt"
	"log"

	"estate-api/dto"

	"github.com/streadway/amqp"
)

// LocalCacheInvalidator es lo único que el consumidor necesita del caché
type LocalCacheInvalidator interface {
	ClearLocal()
}

// RabbitMQConsumer escucha los eventos de publicaciones de todas las instancias
// y limpia el caché local cuando otra instancia cambió algo
type RabbitMQConsumer struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	queueName  string
	instanceID string
	cache      LocalCacheInvalidator
}

// NewRabbitMQConsumer crea una nueva instancia de RabbitMQConsumer
// La cola es exclusiva de esta instancia y se borra al desconectarse
func NewRabbitMQConsumer(rabbitURL, exchange, instanceID string, cache LocalCacheInvalidator) (*RabbitMQConsumer, error) {
	log.Printf("Connecting consumer to RabbitMQ")

	// Conectar con RabbitMQ
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	// Crear channel
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Cola con nombre generado por el servidor
	queue, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(queue.Name, "", exchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Printf("Queue '%s' bound to exchange '%s'", queue.Name, exchange)

	return &RabbitMQConsumer{
		connection: conn,
		channel:    ch,
		exchange:   exchange,
		queueName:  queue.Name,
		instanceID: instanceID,
		cache:      cache,
	}, nil
}

// Start inicia el consumo de mensajes de RabbitMQ
func (c *RabbitMQConsumer) Start() error {
	log.Printf("Starting RabbitMQ consumer for queue '%s'", c.queueName)

	// Procesar un mensaje a la vez
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (manejamos manualmente)
		true,        // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("Consumer registered, waiting for messages...")

	go func() {
		for msg := range msgs {
			c.processMessage(msg)
		}
	}()

	return nil
}

// processMessage procesa un mensaje individual
func (c *RabbitMQConsumer) processMessage(msg amqp.Delivery) {
	var event dto.ListingEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		// Rechazar sin requeue si el formato es inválido
		msg.Nack(false, false)
		return
	}

	if err := validateEvent(event); err != nil {
		log.Printf("Discarding message: %v", err)
		msg.Nack(false, false)
		return
	}

	// Los eventos propios ya limpiaron el caché al publicarse
	if event.Origin != c.instanceID {
		c.cache.ClearLocal()
		log.Printf("Local cache cleared: Action=%s, ListingID=%s, Origin=%s", event.Action, event.ListingID, event.Origin)
	}

	if err := msg.Ack(false); err != nil {
		log.Printf("Error acknowledging message: %v", err)
	}
}

// validateEvent revisa que el evento tenga una acción conocida y a quién afecta
func validateEvent(event dto.ListingEvent) error {
	switch event.Action {
	case dto.ActionCreate, dto.ActionUpdate, dto.ActionDelete:
	default:
		return fmt.Errorf("unknown action: %q", event.Action)
	}
	if event.ListingID == "" && event.UserID == "" {
		return fmt.Errorf("event without listing_id or user_id")
	}
	return nil
}

// Close cierra las conexiones de RabbitMQ
func (c *RabbitMQConsumer) Close() error {
	log.Printf("Closing RabbitMQ consumer connections")

	var errs []error

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing channel: %w", err))
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ consumer: %v", errs)
	}

	log.Printf("RabbitMQ consumer closed successfully")
	return nil
}
