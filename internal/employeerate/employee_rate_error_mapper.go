package employeerate

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.New(apperror.CodeNotFound, "Employee rate not found", http.StatusNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_worker_location" {
			return apperror.New(apperror.CodeConflict, "A rate already exists for this worker and location", http.StatusConflict)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_worker_location") {
		return apperror.New(apperror.CodeConflict, "A rate already exists for this worker and location", http.StatusConflict)
	}

	return err
}
