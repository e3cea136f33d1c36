package leaverequest

import (
	"math"
	"strconv"
	"time"

	leaverequesterrors "github.com/meharshjain/leave-approval-system/internal/leaverequest/errors"
)

// validatedSubmission is what survives the pure checks: parsed dates, the
// computed day count and the resolved academic year.
type validatedSubmission struct {
	StartDate    time.Time
	EndDate      time.Time
	TotalDays    int
	AcademicYear string
}

// validateSubmission runs the pure submission checks: enum membership,
// date parsing, range ordering, no-past-start and the inclusive day count.
// The balance sufficiency check stays in the service because it needs a
// ledger read.
func validateSubmission(req SubmitLeaveRequest, now time.Time) (validatedSubmission, error) {
	if !ValidLeaveType(req.LeaveType) {
		return validatedSubmission{}, leaverequesterrors.ErrInvalidLeaveType
	}
	if req.Reason == "" {
		return validatedSubmission{}, leaverequesterrors.ErrReasonRequired
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return validatedSubmission{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return validatedSubmission{}, err
	}

	if !startDate.Before(endDate) {
		return validatedSubmission{}, leaverequesterrors.ErrInvalidDateRange
	}

	// startDate parses to midnight UTC, so a leave starting today is
	// already "in the past" by the time anyone submits it. Leave must be
	// requested at least a day ahead.
	if startDate.Before(now) {
		return validatedSubmission{}, leaverequesterrors.ErrPastStartDate
	}

	return validatedSubmission{
		StartDate:    startDate,
		EndDate:      endDate,
		TotalDays:    inclusiveDays(startDate, endDate),
		AcademicYear: resolveAcademicYear(req.AcademicYear, now),
	}, nil
}

// inclusiveDays counts both boundary dates: one ceil'd 24h span per day of
// difference, plus one for the start day itself. Inputs must be date-only
// values or fractional days round up before the +1.
func inclusiveDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

func resolveAcademicYear(explicit string, now time.Time) string {
	if explicit != "" {
		return explicit
	}
	return strconv.Itoa(now.Year())
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}
