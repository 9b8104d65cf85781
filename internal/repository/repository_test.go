package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// The repositories are tested against real SQLite databases.  The SQL they
// issue is dialect-portable, so the statements exercised here are the same
// ones MySQL runs in production.

var testSchema = []string{
	`CREATE TABLE venues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		genres TEXT NOT NULL DEFAULT '',
		image_link TEXT NOT NULL DEFAULT '',
		facebook_link TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		seeking_talent INTEGER NOT NULL DEFAULT 0,
		seeking_description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE artists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		genres TEXT NOT NULL DEFAULT '',
		image_link TEXT NOT NULL DEFAULT '',
		facebook_link TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		seeking_venue INTEGER NOT NULL DEFAULT 0,
		seeking_description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE shows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		artist_id INTEGER NOT NULL,
		venue_id INTEGER NOT NULL,
		start_time TEXT NOT NULL
	)`,
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", t.TempDir()+"/showbill.db")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	for _, stmt := range testSchema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

// dbTime formats an offset from a fixed reference instant in the stored
// timestamp layout.
func dbTime(offset time.Duration) string {
	ref := time.Date(2026, time.August, 28, 20, 0, 0, 0, time.UTC)
	return ref.Add(offset).Format(TimeLayout)
}

func mustCreateVenue(t *testing.T, r *VenueRepo, v *Venue) *Venue {
	t.Helper()
	if err := r.Create(context.Background(), v); err != nil {
		t.Fatalf("create venue %q: %v", v.Name, err)
	}
	return v
}

func mustCreateArtist(t *testing.T, r *ArtistRepo, a *Artist) *Artist {
	t.Helper()
	if err := r.Create(context.Background(), a); err != nil {
		t.Fatalf("create artist %q: %v", a.Name, err)
	}
	return a
}

func mustCreateShow(t *testing.T, r *ShowRepo, s *Show) *Show {
	t.Helper()
	if err := r.Create(context.Background(), s); err != nil {
		t.Fatalf("create show: %v", err)
	}
	return s
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
