package location

import (
	"errors"
	"net/http"

	"github.com/jmorrow08/ClevelandCleanSolutionsProject-sub000/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.New(apperror.CodeNotFound, "Location not found", http.StatusNotFound)
	}

	return err
}
