package balanceerrors

import (
	"net/http"

	"github.com/meharshjain/leave-approval-system/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrBalanceExists = apperror.New(
		apperror.CodeConflict,
		"a balance for this employee, year and leave type already exists",
		http.StatusConflict,
	)
	ErrBalanceOverdrawn = apperror.New(
		apperror.CodeInvalidState,
		"balance would go negative",
		http.StatusConflict,
	)
)
