package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// dsn assembles the go-sql-driver connection string.  parseTime is left
// off deliberately: start_time columns travel through the repositories as
// their stored "2006-01-02 15:04:05" text form, in responses as well as in
// comparisons, and a time.Time scan would reformat them.
func dsn(user, pass, host, port, name string) string {
	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4", cred, host, port, name)
}

// Open connects to MySQL, applies pool limits and verifies connectivity
// before the repositories get hold of the pool.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	// The listing surface is read-heavy and holds a connection only for a
	// single query or one short transaction, so a modest pool suffices.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
