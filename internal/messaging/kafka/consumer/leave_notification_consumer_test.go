package consumer

import (
	"encoding/json"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/meharshjain/leave-approval-system/internal/events"
	"github.com/meharshjain/leave-approval-system/internal/notification"
)

func TestMessageToNotification_Requested(t *testing.T) {
	payload, _ := json.Marshal(events.LeaveRequestedEvent{
		RequestID:    "req-1",
		EmployeeName: "Jordan Fields",
		ManagerEmail: "manager@example.com",
		LeaveType:    "VACATION",
		StartDate:    "2025-06-10",
		EndDate:      "2025-06-12",
		TotalDays:    3,
		Reason:       "family trip",
	})

	notif, err := messageToNotification(kafkago.Message{
		Topic: events.LeaveRequestedTopic,
		Value: payload,
	})
	assert.NoError(t, err)
	assert.Equal(t, "manager@example.com", notif.To)
	assert.Equal(t, notification.TemplateLeaveRequest, notif.Template)
	assert.Equal(t, 3, notif.Data["TotalDays"])
}

func TestMessageToNotification_Decided(t *testing.T) {
	payload, _ := json.Marshal(events.LeaveDecidedEvent{
		RequestID:     "req-1",
		EmployeeEmail: "jordan@example.com",
		EmployeeName:  "Jordan Fields",
		LeaveType:     "SICK",
		Status:        "APPROVED",
	})

	notif, err := messageToNotification(kafkago.Message{
		Topic: events.LeaveDecidedTopic,
		Value: payload,
	})
	assert.NoError(t, err)
	assert.Equal(t, "jordan@example.com", notif.To)
	assert.Equal(t, notification.TemplateLeaveApproval, notif.Template)
	assert.Equal(t, "APPROVED", notif.Data["Status"])
}

func TestMessageToNotification_Garbage(t *testing.T) {
	_, err := messageToNotification(kafkago.Message{
		Topic: events.LeaveRequestedTopic,
		Value: []byte("not json"),
	})
	assert.Error(t, err)
}
