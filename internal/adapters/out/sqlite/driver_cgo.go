//go:build sqlite_cgo

package sqlite

// This file is compiled with the sqlite_cgo tag and links the C SQLite library.
//
// Build command:
//   CGO_ENABLED=1 go build -tags "sqlite_cgo" ./...
//
// Driver used: github.com/mattn/go-sqlite3

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the database/sql driver name registered by the linked driver.
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration.
	BuildMode = "cgo"
)

// isUniqueViolation reports a PRIMARY KEY or UNIQUE constraint failure by its
// extended result code.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
