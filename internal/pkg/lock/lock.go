// Package lock provides short lived named locks used to serialise writers of
// the same employee month.
package lock

import (
	"errors"
	"fmt"
)

// ErrLocked is returned when another holder owns the key.
var ErrLocked = errors.New("lock is held by another request")

// Key names the lock of one employee's month.
func Key(employeeID int64, month, year int) string {
	return fmt.Sprintf("attendance:lock:%d:%04d-%02d", employeeID, year, month)
}
