package payrollerrors

import (
	"net/http"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrPayslipAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"you may only view your own payslips",
		http.StatusForbidden,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
)
