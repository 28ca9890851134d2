package employee

import (
	"regexp"
	"strings"

	employeeerrors "github.com/pathakpriyanka774/hrms-lite/internal/employee/errors"
)

// Matched against the trimmed address before lowercasing. ASCII letters only; no (?i).
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@(?:[A-Za-z0-9-]+\.)+[A-Za-z]{2,}$`)

// NormalizeEmployeeID is shared by the create path and every lookup by id.
func NormalizeEmployeeID(id string) string {
	return strings.TrimSpace(id)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewEmployee normalizes req and validates the result. It never touches the store.
func NewEmployee(req CreateEmployeeRequest) (*Employee, error) {
	rawEmail := strings.TrimSpace(req.Email)
	e := &Employee{
		EmployeeID: NormalizeEmployeeID(req.EmployeeID),
		FullName:   strings.TrimSpace(req.FullName),
		Email:      NormalizeEmail(rawEmail),
		Department: strings.TrimSpace(req.Department),
	}

	switch {
	case e.EmployeeID == "":
		return nil, employeeerrors.ErrInvalidEmployeeID
	case e.FullName == "":
		return nil, employeeerrors.ErrInvalidFullName
	case !emailPattern.MatchString(rawEmail):
		return nil, employeeerrors.ErrInvalidEmail
	case e.Department == "":
		return nil, employeeerrors.ErrInvalidDepartment
	}

	return e, nil
}
