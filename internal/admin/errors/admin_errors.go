package adminerrors

import (
	"net/http"

	"github.com/ImanMustopaKamal/deptech-be/internal/shared/apperror"
)

var (
	ErrInvalidAdminID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid admin id",
		http.StatusBadRequest,
	)
	ErrInvalidDateOfBirth = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date_of_birth format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrAdminNotFound = apperror.New(
		apperror.CodeNotFound,
		"admin not found",
		http.StatusNotFound,
	)
	ErrAdminAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"admin with this email already exists",
		http.StatusConflict,
	)
	ErrCannotDeleteSelf = apperror.New(
		apperror.CodeInvalidState,
		"cannot delete your own account",
		http.StatusBadRequest,
	)
	ErrCannotDeleteLastAdmin = apperror.New(
		apperror.CodeInvalidState,
		"cannot delete the last admin",
		http.StatusBadRequest,
	)
)
