// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
)

const codeUniqueViolation = "23505"

// SQLSTATE classes that indicate the operation may succeed if retried
var transientClasses = map[pq.ErrorClass]bool{
	"08": true, // connection exception
	"40": true, // transaction rollback (serialization, deadlock)
	"53": true, // insufficient resources
	"57": true, // operator intervention
}

// IsUniqueViolation reports whether err is a unique constraint violation
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation
}

// IsTransient reports whether err is a connectivity or timeout failure that a
// caller may retry
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return transientClasses[pqErr.Code.Class()]
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
