package leaverequest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	leaverequesterrors "github.com/meharshjain/leave-approval-system/internal/leaverequest/errors"
)

func TestValidateSubmission(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	base := SubmitLeaveRequest{
		LeaveType: LeaveTypeVacation,
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
		Reason:    "family trip",
	}

	t.Run("valid request", func(t *testing.T) {
		v, err := validateSubmission(base, now)
		assert.NoError(t, err)
		assert.Equal(t, 3, v.TotalDays)
		assert.Equal(t, "2025", v.AcademicYear)
	})

	t.Run("explicit academic year wins", func(t *testing.T) {
		req := base
		req.AcademicYear = "2025-2026"
		v, err := validateSubmission(req, now)
		assert.NoError(t, err)
		assert.Equal(t, "2025-2026", v.AcademicYear)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		req := base
		req.LeaveType = "SABBATICAL"
		_, err := validateSubmission(req, now)
		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidLeaveType)
	})

	t.Run("missing reason", func(t *testing.T) {
		req := base
		req.Reason = ""
		_, err := validateSubmission(req, now)
		assert.ErrorIs(t, err, leaverequesterrors.ErrReasonRequired)
	})

	t.Run("malformed date", func(t *testing.T) {
		req := base
		req.StartDate = "10/06/2025"
		_, err := validateSubmission(req, now)
		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateFormat)
	})

	t.Run("start equal to end", func(t *testing.T) {
		req := base
		req.EndDate = req.StartDate
		_, err := validateSubmission(req, now)
		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateRange)
	})

	t.Run("end before start", func(t *testing.T) {
		req := base
		req.StartDate = "2025-06-12"
		req.EndDate = "2025-06-10"
		_, err := validateSubmission(req, now)
		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateRange)
	})

	t.Run("start in the past", func(t *testing.T) {
		req := base
		req.StartDate = "2025-05-28"
		req.EndDate = "2025-05-30"
		_, err := validateSubmission(req, now)
		assert.ErrorIs(t, err, leaverequesterrors.ErrPastStartDate)
	})

	t.Run("start today is already past midnight", func(t *testing.T) {
		req := base
		req.StartDate = "2025-06-01"
		req.EndDate = "2025-06-03"
		_, err := validateSubmission(req, now)
		assert.ErrorIs(t, err, leaverequesterrors.ErrPastStartDate)
	})
}

func TestInclusiveDays(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2025-06-01", "2025-06-02", 2},
		{"2025-06-01", "2025-06-03", 3},
		{"2025-06-01", "2025-06-30", 30},
		{"2025-12-29", "2026-01-02", 5},
	}
	for _, tc := range cases {
		start, _ := parseDate(tc.start)
		end, _ := parseDate(tc.end)
		assert.Equal(t, tc.want, inclusiveDays(start, end), "%s..%s", tc.start, tc.end)
	}
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		manager, coordinator, want string
	}{
		{StatusPending, StatusPending, StatusPending},
		{StatusApproved, StatusPending, StatusPending},
		{StatusPending, StatusApproved, StatusPending},
		{StatusApproved, StatusApproved, StatusApproved},
		{StatusRejected, StatusPending, StatusRejected},
		{StatusPending, StatusRejected, StatusRejected},
		{StatusRejected, StatusApproved, StatusRejected},
		{StatusApproved, StatusRejected, StatusRejected},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, deriveStatus(tc.manager, tc.coordinator),
			"manager=%s coordinator=%s", tc.manager, tc.coordinator)
	}
}
