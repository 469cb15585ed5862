package utils

import (
	"database/sql"
	"database/sql/driver"
	"errors"
)

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable reports whether the current database has the named table.
// Errors (including bad connections) read as false; the caller decides
// whether that matters.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

// HasColumn reports whether the named table has the named column.
func HasColumn(q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)

	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}
