package attendance

import (
	attendanceerrors "github.com/pathakpriyanka774/hrms-lite/internal/attendance/errors"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/dberror"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	switch dberror.Classify(err).Kind {
	case dberror.KindUnique:
		// the only unique key besides the generated id is (employee_id, date)
		return attendanceerrors.ErrAttendanceAlreadyMarked
	case dberror.KindForeignKey:
		return attendanceerrors.ErrEmployeeNotFound
	}

	return err
}
