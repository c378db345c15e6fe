package store

import (
	"database/sql"
	"errors"
	"log"

	"github.com/mattn/go-sqlite3"
)

// OpenSQLite opens (or creates) the SQLite database at path and ensures
// the schema exists. This is the default backend.
func OpenSQLite(path string) (Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY churn under concurrent requests.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSQLSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("✅ SQLite database ready at %s", path)
	return &sqlStore{
		db:          db,
		rebind:      func(q string) string { return q },
		isDuplicate: sqliteIsDuplicate,
	}, nil
}

func sqliteIsDuplicate(err error) bool {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
