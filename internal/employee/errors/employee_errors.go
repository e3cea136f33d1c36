package employeeerrors

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
	ErrInvalidManagerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid manager id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"manager not found",
		http.StatusBadRequest,
	)
)
