package employee

import (
	"errors"

	employeeerrors "github.com/pathakpriyanka774/hrms-lite/internal/employee/errors"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/dberror"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/schema"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if v := dberror.Classify(err); v.Kind == dberror.KindUnique {
		// employees only has two unique keys: the primary key and the email.
		if v.Mentions(schema.ConstraintEmployeeEmail, "employees.email") {
			return employeeerrors.ErrEmailAlreadyExists
		}
		return employeeerrors.ErrEmployeeIDAlreadyExists
	}

	return err
}
