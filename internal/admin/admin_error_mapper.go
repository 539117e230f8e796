package admin

import (
	"errors"
	"strings"

	adminerrors "github.com/ImanMustopaKamal/deptech-be/internal/admin/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return adminerrors.ErrAdminNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_admin_email" {
			return adminerrors.ErrAdminAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_admin_email") {
		return adminerrors.ErrAdminAlreadyExists
	}

	return err
}
