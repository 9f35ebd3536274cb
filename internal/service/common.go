package service

import (
	"database/sql"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func validatePositiveInt(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be > 0", ErrValidation, name)
	}
	return nil
}

// FormatDate returns the local calendar day of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD day at local midnight. Only the exact
// stored form is accepted, surrounding whitespace included, because dates
// are matched as strings.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, value)
	}
	return t, nil
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
