package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"horeca-board/pkg/config"
	"horeca-board/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueueName = "notification_queue"
	NotificationExchange  = "notifications"
)

// Routing keys for the application lifecycle.
const (
	RoutingApplicationCreated = "application.created"
	RoutingApplicationStatus  = "application.status"
)

// NotificationTask is the message the job service emits and the notification worker consumes.
type NotificationTask struct {
	Type          string    `json:"type"`
	UserID        string    `json:"user_id"`
	JobID         string    `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	ApplicationID string    `json:"application_id"`
	Status        string    `json:"status,omitempty"`
	Priority      int       `json:"priority"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher is satisfied by *Client. Use cases depend on this so tests can swap it.
type Publisher interface {
	PublishNotificationTask(routingKey string, task NotificationTask) error
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func declareTopology(channel *amqp.Channel) error {
	err := channel.ExchangeDeclare(
		NotificationExchange, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NotificationQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		amqp.Table{
			"x-max-priority": 10,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	for _, key := range []string{RoutingApplicationCreated, RoutingApplicationStatus} {
		if err := channel.QueueBind(NotificationQueueName, key, NotificationExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue to %s: %w", key, err)
		}
	}
	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func clampPriority(p int) uint8 {
	if p < 0 {
		return 0
	}
	if p > 10 {
		return 10
	}
	return uint8(p)
}

// PublishNotificationTask publishes a notification task with priority.
func (c *Client) PublishNotificationTask(routingKey string, task NotificationTask) error {
	if task.OccurredAt.IsZero() {
		task.OccurredAt = time.Now().UTC()
	}

	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.Publish(
		NotificationExchange, // exchange
		routingKey,           // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         taskJSON,
			Priority:     clampPriority(task.Priority),
			DeliveryMode: amqp.Persistent,
			Timestamp:    task.OccurredAt,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish to exchange=%s, routing_key=%s: %v", NotificationExchange, routingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published %s task for user=%s job=%s", task.Type, task.UserID, task.JobID)
	return nil
}

type deliveryOutcome int

const (
	outcomeAck deliveryOutcome = iota
	outcomeRequeue
	outcomeDrop
)

// processDelivery decodes one message and runs the handler. Malformed bodies are dropped,
// handler failures are requeued.
func processDelivery(body []byte, handler func(task NotificationTask) error) (deliveryOutcome, error) {
	var task NotificationTask
	if err := json.Unmarshal(body, &task); err != nil {
		return outcomeDrop, fmt.Errorf("failed to unmarshal notification task: %w", err)
	}
	if task.UserID == "" || task.Type == "" {
		return outcomeDrop, fmt.Errorf("notification task missing user_id or type")
	}
	if err := handler(task); err != nil {
		return outcomeRequeue, err
	}
	return outcomeAck, nil
}

// ConsumeNotificationTasks consumes notification tasks from the queue.
func (c *Client) ConsumeNotificationTasks(handler func(task NotificationTask) error) error {
	msgs, err := c.channel.Consume(
		NotificationQueueName, // queue
		"",                    // consumer
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from notification queue: %s", NotificationQueueName)

	go func() {
		for msg := range msgs {
			outcome, err := processDelivery(msg.Body, handler)
			switch outcome {
			case outcomeDrop:
				c.logger.Error("[RABBITMQ] Dropping message: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
			case outcomeRequeue:
				c.logger.Error("[RABBITMQ] Handler failed, requeueing: %v", err)
				msg.Nack(false, true)
			default:
				msg.Ack(false)
			}
		}
	}()

	return nil
}

// GetQueueLength returns the number of messages in the queue
func (c *Client) GetQueueLength() (int, error) {
	queue, err := c.channel.QueueInspect(NotificationQueueName)
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}
