package queue

import (
	"context"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/hibiken/asynq"
)

const DefaultQueue = "default"

// Config selects the Redis instance backing the queue. A disabled queue
// accepts every call and publishes nothing.
type Config struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	Queue    string
	MaxRetry int
}

// Client implements ports.Notifier and ports.ArrivalDispatcher.
type Client struct {
	client   *asynq.Client
	enabled  bool
	queue    string
	maxRetry int
}

var (
	_ ports.Notifier          = (*Client)(nil)
	_ ports.ArrivalDispatcher = (*Client)(nil)
)

func NewClient(cfg Config) *Client {
	queueName := strings.TrimSpace(cfg.Queue)
	if queueName == "" {
		queueName = DefaultQueue
	}
	if !cfg.Enabled {
		return &Client{queue: queueName}
	}
	return &Client{
		client:   asynq.NewClient(buildRedisOpt(cfg)),
		enabled:  true,
		queue:    queueName,
		maxRetry: cfg.MaxRetry,
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Notify publishes a notice for its user.
func (c *Client) Notify(ctx context.Context, notice ports.Notice) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewNotificationTask(NotificationPayload{
		UserID:    notice.UserID.String(),
		Title:     notice.Title,
		Message:   notice.Message,
		EventType: notice.EventType,
		Ref:       notice.Ref,
	})
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

// AutoAssignOnArrival asks the dispatch service to pick a courier for an
// order that reached its destination office. The task id makes repeated
// requests for the same order collapse into one.
func (c *Client) AutoAssignOnArrival(ctx context.Context, orderID kernel.UUID) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewArrivalTask(ArrivalPayload{OrderID: orderID.String()})
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task, asynq.TaskID("arrival:"+orderID.String()))
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	options := append([]asynq.Option{asynq.Queue(c.queue)}, opts...)
	if c.maxRetry > 0 {
		options = append(options, asynq.MaxRetry(c.maxRetry))
	}
	_, err := c.client.EnqueueContext(ctx, task, options...)
	return err
}

func buildRedisOpt(cfg Config) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	if strings.TrimSpace(cfg.Host) != "" {
		host = strings.TrimSpace(cfg.Host)
	}
	if cfg.Port > 0 {
		port = cfg.Port
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
