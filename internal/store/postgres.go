package store

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/lib/pq"
)

// OpenPostgres connects to PostgreSQL and ensures the schema exists.
func OpenPostgres(postgresURI string) (Store, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSQLSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")
	return &sqlStore{
		db:          db,
		rebind:      rebindDollar,
		isDuplicate: postgresIsDuplicate,
	}, nil
}

func postgresIsDuplicate(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == "23505" // unique_violation
}
