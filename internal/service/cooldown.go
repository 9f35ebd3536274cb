package service

import (
	"database/sql"
	"fmt"
	"time"
)

// DefaultCooldown is the minimum wait between two logged submissions.
const DefaultCooldown = 10 * time.Minute

// CheckCooldown fails with ErrCooldown while the newest log is more recent
// than cooldown. A cooldown <= 0 disables the check.
func CheckCooldown(db *sql.DB, now time.Time, cooldown time.Duration) error {
	if cooldown <= 0 {
		return nil
	}
	last, ok, err := GetLastIntakeTime(db)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	remaining := last.Add(cooldown).Sub(now)
	if remaining <= 0 {
		return nil
	}
	return fmt.Errorf("%w: take a break of %s before logging again", ErrCooldown, remaining.Round(time.Second))
}
