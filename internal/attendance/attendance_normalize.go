package attendance

import (
	"strings"
	"time"

	attendanceerrors "github.com/pathakpriyanka774/hrms-lite/internal/attendance/errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeStatus trims s and capitalizes it: " present " -> "Present", "ABSENT" -> "Absent".
// The result is not guaranteed to be a known status.
func NormalizeStatus(s string) string {
	// A Caser keeps state, so one is built per call.
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

func IsValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent
}

// NormalizeDate accepts a plain calendar date or an RFC 3339 timestamp and returns
// the calendar date in DateLayout. The time-of-day and offset of a timestamp are dropped.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d.Format(DateLayout), true
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.Format(DateLayout), true
	}
	return "", false
}

func NewAttendance(req MarkAttendanceRequest) (*Attendance, error) {
	a := &Attendance{
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		Status:     NormalizeStatus(req.Status),
	}
	if a.EmployeeID == "" {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}

	date, ok := NormalizeDate(req.Date)
	if !ok {
		return nil, attendanceerrors.ErrInvalidDate
	}
	a.Date = date

	if !IsValidStatus(a.Status) {
		return nil, attendanceerrors.ErrInvalidStatus
	}
	return a, nil
}

// Bounds parses the optional filter bounds. An empty bound is returned as "".
func (f ListFilter) Bounds() (start, end string, err error) {
	if strings.TrimSpace(f.StartDate) != "" {
		var ok bool
		if start, ok = NormalizeDate(f.StartDate); !ok {
			return "", "", attendanceerrors.ErrInvalidDateFilter
		}
	}
	if strings.TrimSpace(f.EndDate) != "" {
		var ok bool
		if end, ok = NormalizeDate(f.EndDate); !ok {
			return "", "", attendanceerrors.ErrInvalidDateFilter
		}
	}
	return start, end, nil
}
