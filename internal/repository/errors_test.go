package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDupEntry(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'uq_users_email'"}
	assert.True(t, isDupEntry(dup))
	assert.True(t, isDupEntry(fmt.Errorf("insert: %w", dup)))

	assert.False(t, isDupEntry(&mysql.MySQLError{Number: 1213}))
	assert.False(t, isDupEntry(errors.New("1062")))
	assert.False(t, isDupEntry(nil))
}

func TestIsFKViolation(t *testing.T) {
	fk := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	assert.True(t, isFKViolation(fk))
	assert.True(t, isFKViolation(fmt.Errorf("insert: %w", fk)))
	assert.False(t, isFKViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, isFKViolation(nil))
}

func TestIsLockConflict(t *testing.T) {
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
	timeout := &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}

	assert.True(t, isLockConflict(deadlock))
	assert.True(t, isLockConflict(timeout))
	assert.True(t, isLockConflict(fmt.Errorf("exec: %w", deadlock)))

	assert.False(t, isLockConflict(&mysql.MySQLError{Number: 1062}))
	assert.False(t, isLockConflict(errors.New("deadlock")))
	assert.False(t, isLockConflict(nil))
}
