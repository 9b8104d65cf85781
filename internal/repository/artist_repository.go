// Package repository contains data access logic separated from HTTP handlers.
// This file defines the Artist model and repository methods.  An Artist is a
// performer who can be booked at venues and owns zero or more shows through
// shows.artist_id.  The methods mirror the venue repository; artists have no
// grouped listing and no delete route.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Artist represents an artist entity persisted in the database.  Genres
// holds the comma-joined encoding shared with venues (see genres.go).
type Artist struct {
	ID                 uint64 // ID is the unique identifier of the artist
	Name               string // Name is the artist or band name
	City               string // City the artist is based in
	State              string // State the artist is based in
	Phone              string // Phone is a free-form contact number
	Genres             string // Genres is the comma-joined genre list
	ImageLink          string // ImageLink points at a promotional image
	FacebookLink       string // FacebookLink points at the artist's page
	Website            string // Website is the artist's own site
	SeekingVenue       bool   // SeekingVenue marks artists looking for venues
	SeekingDescription string // SeekingDescription explains what is sought
}

// ArtistRef is the minimal (id, name) pair used by the artists index page.
type ArtistRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ArtistSummary is a search row: the artist plus its count of upcoming
// shows at query time.
type ArtistSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = errors.New("artist not found")

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

const artistColumns = `id, name, city, state, phone, genres,
	image_link, facebook_link, website, seeking_venue, seeking_description`

func scanArtist(row *sql.Row, a *Artist) error {
	return row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Genres,
		&a.ImageLink, &a.FacebookLink, &a.Website,
		&a.SeekingVenue, &a.SeekingDescription)
}

// Create inserts a new artist inside a transaction.  On success the
// artist's ID field is populated with the auto-generated value; any failure
// rolls the transaction back.
func (r *ArtistRepo) Create(ctx context.Context, a *Artist) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	const q = `INSERT INTO artists
	    (name, city, state, phone, genres, image_link, facebook_link, website, seeking_venue, seeking_description)
	    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.Genres,
		a.ImageLink, a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID fetches an artist by its ID.  It returns ErrArtistNotFound if no
// row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists WHERE id = ?`
	var a Artist
	if err := scanArtist(r.db.QueryRowContext(ctx, q, id), &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Update overwrites every mutable field of the artist identified by a.ID
// (full-record overwrite, matching the edit form submission).  It returns
// ErrArtistNotFound when the id does not exist.
func (r *ArtistRepo) Update(ctx context.Context, a *Artist) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, a.ID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	const q = `UPDATE artists SET name = ?, city = ?, state = ?, phone = ?, genres = ?,
	    image_link = ?, facebook_link = ?, website = ?, seeking_venue = ?, seeking_description = ?
	    WHERE id = ?`
	_, err = tx.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.Genres,
		a.ImageLink, a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription,
		a.ID)
	return err
}

// ListAll returns the (id, name) pair of every artist ordered by name then
// id.  It backs the artists index page.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]ArtistRef, error) {
	const q = `SELECT id, name FROM artists ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ArtistRef, 0)
	for rows.Next() {
		var a ArtistRef
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName performs a case-insensitive substring match on artist names.
// An empty term matches every row.  Results are ordered by name then id.
func (r *ArtistRepo) SearchByName(ctx context.Context, term, now string) ([]ArtistSummary, error) {
	const q = `SELECT a.id, a.name,
	        (SELECT COUNT(*) FROM shows s WHERE s.artist_id = a.id AND s.start_time > ?) AS num_upcoming
	    FROM artists a
	    WHERE LOWER(a.name) LIKE ?
	    ORDER BY a.name, a.id`
	pattern := "%" + strings.ToLower(term) + "%"
	rows, err := r.db.QueryContext(ctx, q, now, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ArtistSummary, 0)
	for rows.Next() {
		var s ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
