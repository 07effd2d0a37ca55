// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel error values reused across multiple
// repositories so higher layers can distinguish failure scenarios without
// string matching.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state, such as cancelling an already-completed booking.
// Handlers should translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrTurfNotFound is returned when a turf cannot be found.
var ErrTurfNotFound = errors.New("turf not found")

// ErrBookingNotFound is returned when a booking cannot be found.
var ErrBookingNotFound = errors.New("booking not found")

// ErrReviewNotFound is returned when a review cannot be found.
var ErrReviewNotFound = errors.New("review not found")

// ErrNotificationNotFound is returned when a notification cannot be found.
var ErrNotificationNotFound = errors.New("notification not found")

// ErrSlotTaken is returned by the booking repository when the transactional
// insert finds an overlapping pending or confirmed booking under lock. It is
// the storage-level backstop for the pure conflict check: two concurrent
// requests may both pass validation, but only one survives the locked
// re-check.
var ErrSlotTaken = errors.New("time slot is already booked")

// MySQL server error numbers the repositories react to.
const (
	mysqlErrDupEntry        = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
	mysqlErrFKViolation     = 1452
)

func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDupEntry
}

func isFKViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrFKViolation
}

// isLockConflict matches the InnoDB outcomes of two transactions racing on
// the same slot range: the loser's gap lock either deadlocks or times out.
// No row was written in either case, so callers can treat it like losing
// the FOR UPDATE re-check.
func isLockConflict(err error) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	return me.Number == mysqlErrDeadlock || me.Number == mysqlErrLockWaitTimeout
}
