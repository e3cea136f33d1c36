package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_LeaveRequest(t *testing.T) {
	body, err := Render(Message{
		To:       "manager@example.com",
		Template: TemplateLeaveRequest,
		Data: map[string]any{
			"EmployeeName": "Jordan Fields",
			"TotalDays":    3,
			"LeaveType":    "VACATION",
			"StartDate":    "2025-06-10",
			"EndDate":      "2025-06-12",
			"Reason":       "family trip",
		},
	})
	assert.NoError(t, err)
	assert.Contains(t, body, "Jordan Fields has requested 3 day(s) of VACATION leave")
	assert.Contains(t, body, "Reason: family trip")
}

func TestRender_LeaveApproval(t *testing.T) {
	t.Run("with comments", func(t *testing.T) {
		body, err := Render(Message{
			Template: TemplateLeaveApproval,
			Data: map[string]any{
				"EmployeeName": "Jordan Fields",
				"LeaveType":    "SICK",
				"StartDate":    "2025-06-10",
				"EndDate":      "2025-06-12",
				"Status":       "REJECTED",
				"Comments":     "coverage gap that week",
			},
		})
		assert.NoError(t, err)
		assert.Contains(t, body, "is now REJECTED")
		assert.Contains(t, body, "Comments from the approver: coverage gap that week")
	})

	t.Run("without comments", func(t *testing.T) {
		body, err := Render(Message{
			Template: TemplateLeaveApproval,
			Data: map[string]any{
				"EmployeeName": "Jordan Fields",
				"LeaveType":    "SICK",
				"StartDate":    "2025-06-10",
				"EndDate":      "2025-06-12",
				"Status":       "APPROVED",
				"Comments":     "",
			},
		})
		assert.NoError(t, err)
		assert.NotContains(t, body, "Comments from the approver")
	})
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Message{Template: "password_reset"})
	assert.Error(t, err)
}
