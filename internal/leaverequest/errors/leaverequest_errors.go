package leaverequesterrors

import (
	"fmt"
	"net/http"

	"github.com/meharshjain/leave-approval-system/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before end_date",
		http.StatusBadRequest,
	)
	ErrPastStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must not be in the past",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"this approval has already been decided",
		http.StatusConflict,
	)
	ErrAlreadyFinalized = apperror.New(
		apperror.CodeInvalidState,
		"this leave request has already reached a final status",
		http.StatusConflict,
	)
	ErrVersionConflict = apperror.New(
		apperror.CodeConflict,
		"the leave request was modified concurrently, retry the operation",
		http.StatusConflict,
	)
	ErrBalanceExhausted = apperror.New(
		apperror.CodeConflict,
		"leave balance is no longer sufficient to approve this request",
		http.StatusConflict,
	)
	ErrUnsupportedApproverRole = apperror.New(
		apperror.CodeForbidden,
		"only managers, coordinators and admins can decide leave requests",
		http.StatusForbidden,
	)
)

// InsufficientBalance carries the available and requested day counts so the
// caller can show the shortfall.
func InsufficientBalance(available, requested int) *apperror.AppError {
	e := apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("insufficient leave balance: %d day(s) available, %d requested", available, requested),
		http.StatusBadRequest,
	)
	return e.WithDetails(map[string]int{
		"available": available,
		"requested": requested,
	})
}
