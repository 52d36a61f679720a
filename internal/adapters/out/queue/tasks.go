// Package queue publishes fire-and-forget work to Redis through asynq:
// user notifications and last-mile assignment requests. Consumers live in
// other services.
package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TaskNotification = "logistics:notification"
	TaskArrival      = "logistics:order_arrived"
)

// NotificationPayload is the body of TaskNotification.
type NotificationPayload struct {
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	EventType string `json:"event_type"`
	Ref       string `json:"ref,omitempty"`
}

// ArrivalPayload is the body of TaskArrival.
type ArrivalPayload struct {
	OrderID string `json:"order_id"`
}

func NewNotificationTask(payload NotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotification, body), nil
}

func NewArrivalTask(payload ArrivalPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskArrival, body), nil
}
