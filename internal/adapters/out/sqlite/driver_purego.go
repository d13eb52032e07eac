//go:build !sqlite_cgo

package sqlite

// This file is compiled by default. It uses a pure Go SQLite implementation,
// so no C compiler is required.
//
// Driver used: modernc.org/sqlite

import (
	"errors"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	// DriverName is the database/sql driver name registered by the linked driver.
	DriverName = "sqlite"

	// BuildMode describes the current build configuration.
	BuildMode = "purego"
)

// isUniqueViolation reports a PRIMARY KEY or UNIQUE constraint failure. The driver
// enables extended result codes on every connection, so Code carries them.
func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
