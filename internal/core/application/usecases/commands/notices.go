package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"go.uber.org/zap"
)

// NoticeSender delivers notices once a transaction has committed. Failures
// are logged and dropped.
//
// Example:
//
//	notices := commands.NewNoticeSender(queueClient, logger)
//	handler := commands.NewCompleteDeliveryCommandHandler(ledgerUoWFactory, notices)
type NoticeSender struct {
	notifier ports.Notifier
	log      *zap.Logger
}

func NewNoticeSender(notifier ports.Notifier, log *zap.Logger) NoticeSender {
	if log == nil {
		log = zap.NewNop()
	}
	return NoticeSender{notifier: notifier, log: log}
}

// Send dispatches each notice independently.
func (s NoticeSender) Send(ctx context.Context, notices ...ports.Notice) {
	if s.notifier == nil {
		return
	}
	for _, n := range notices {
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.log.Warn("notification dropped",
				zap.String("user_id", n.UserID.String()),
				zap.String("event_type", n.EventType),
				zap.String("ref", n.Ref),
				zap.Error(err),
			)
		}
	}
}

func orderNotice(userID kernel.UUID, eventType, title, message, trackingCode string) ports.Notice {
	return ports.Notice{
		UserID:    userID,
		Title:     title,
		Message:   message,
		EventType: eventType,
		Ref:       trackingCode,
	}
}
