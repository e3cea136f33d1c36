package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/meharshjain/leave-approval-system/internal/events"
	"github.com/meharshjain/leave-approval-system/internal/notification"
)

// ConsumeLeaveNotifications reads leave.requested and leave.decided events
// and hands them to the notification dispatcher. Undecodable messages are
// committed and skipped; delivery failures are left uncommitted so kafka
// redelivers them.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notifications")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		notif, err := messageToNotification(msg)
		if err != nil {
			log.Error("decode leave event failed",
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := dispatcher.Dispatch(ctx, notif); err != nil {
			log.Error("dispatch leave notification failed",
				zap.String("topic", msg.Topic),
				zap.String("to", notif.To),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
			continue
		}

		log.Info("leave notification processed",
			zap.String("topic", msg.Topic),
			zap.String("template", notif.Template),
		)
	}
}

func messageToNotification(msg kafkago.Message) (notification.Message, error) {
	switch msg.Topic {
	case events.LeaveRequestedTopic:
		var event events.LeaveRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return notification.Message{}, err
		}
		return notification.Message{
			To:       event.ManagerEmail,
			Template: notification.TemplateLeaveRequest,
			Data: map[string]any{
				"EmployeeName": event.EmployeeName,
				"LeaveType":    event.LeaveType,
				"StartDate":    event.StartDate,
				"EndDate":      event.EndDate,
				"TotalDays":    event.TotalDays,
				"Reason":       event.Reason,
			},
		}, nil
	default:
		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return notification.Message{}, err
		}
		return notification.Message{
			To:       event.EmployeeEmail,
			Template: notification.TemplateLeaveApproval,
			Data: map[string]any{
				"EmployeeName": event.EmployeeName,
				"LeaveType":    event.LeaveType,
				"StartDate":    event.StartDate,
				"EndDate":      event.EndDate,
				"Status":       event.Status,
				"Comments":     event.Comments,
			},
		}, nil
	}
}
