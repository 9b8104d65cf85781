// Package repository contains data access logic for Show domain operations.
// This file defines the Show model and repository methods.  A Show is the
// join entity realizing the many-to-many Artist↔Venue performance relation:
// it references exactly one artist and one venue and carries the start
// timestamp.  Shows are created only; the application exposes no update or
// delete route for them.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Show represents a scheduled performance persisted in the database.
// StartTime is stored in DB format "2006-01-02 15:04:05" (UTC).
type Show struct {
	ID        uint64 // ID is the primary key of the show
	ArtistID  uint64 // ArtistID references artists.id; required
	VenueID   uint64 // VenueID references venues.id; required
	StartTime string // StartTime is the DB timestamp when the show begins
}

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// ShowRow is one row of the global shows listing, joined with the venue
// name and the artist's name and image.
type ShowRow struct {
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// ArtistShowRow is a show on a venue's detail page, carrying the
// counterpart artist's name and image.
type ArtistShowRow struct {
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// VenueShowRow is a show on an artist's detail page, carrying the
// counterpart venue's name and image.
type VenueShowRow struct {
	VenueID        uint64 `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show inside a transaction.  Both referenced records
// are verified within the same transaction before the insert so a show can
// never be committed pointing at a missing artist or venue; the miss is
// reported as ErrArtistNotFound / ErrVenueNotFound.  On success the show's
// ID is populated with the auto-generated value.
func (r *ShowRepo) Create(ctx context.Context, s *Show) error {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, s.ArtistID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, s.VenueID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListAll returns every show joined with its venue name, artist name and
// artist image, ordered by start time then id.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowRow, error) {
	const q = `SELECT s.venue_id, v.name, s.artist_id, a.name, a.image_link, s.start_time
	    FROM shows s
	    JOIN venues v ON v.id = s.venue_id
	    JOIN artists a ON a.id = s.artist_id
	    ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ShowRow, 0)
	for rows.Next() {
		var row ShowRow
		if err := rows.Scan(&row.VenueID, &row.VenueName, &row.ArtistID,
			&row.ArtistName, &row.ArtistImageLink, &row.StartTime); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// forVenue selects shows of one venue joined with artist details.  The cmp
// operator partitions past ("<=") from upcoming (">") relative to now; a
// show starting exactly at the query instant counts as past.
func (r *ShowRepo) forVenue(ctx context.Context, venueID uint64, now, cmp string) ([]ArtistShowRow, error) {
	q := `SELECT s.artist_id, a.name, a.image_link, s.start_time
	    FROM shows s
	    JOIN artists a ON a.id = s.artist_id
	    WHERE s.venue_id = ? AND s.start_time ` + cmp + ` ?
	    ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, venueID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ArtistShowRow, 0)
	for rows.Next() {
		var row ArtistShowRow
		if err := rows.Scan(&row.ArtistID, &row.ArtistName, &row.ArtistImageLink, &row.StartTime); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PastForVenue returns the venue's shows with start_time <= now.
func (r *ShowRepo) PastForVenue(ctx context.Context, venueID uint64, now string) ([]ArtistShowRow, error) {
	return r.forVenue(ctx, venueID, now, "<=")
}

// UpcomingForVenue returns the venue's shows with start_time > now.
func (r *ShowRepo) UpcomingForVenue(ctx context.Context, venueID uint64, now string) ([]ArtistShowRow, error) {
	return r.forVenue(ctx, venueID, now, ">")
}

// forArtist selects shows of one artist joined with venue details, with the
// same cmp convention as forVenue.
func (r *ShowRepo) forArtist(ctx context.Context, artistID uint64, now, cmp string) ([]VenueShowRow, error) {
	q := `SELECT s.venue_id, v.name, v.image_link, s.start_time
	    FROM shows s
	    JOIN venues v ON v.id = s.venue_id
	    WHERE s.artist_id = ? AND s.start_time ` + cmp + ` ?
	    ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, artistID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]VenueShowRow, 0)
	for rows.Next() {
		var row VenueShowRow
		if err := rows.Scan(&row.VenueID, &row.VenueName, &row.VenueImageLink, &row.StartTime); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PastForArtist returns the artist's shows with start_time <= now.
func (r *ShowRepo) PastForArtist(ctx context.Context, artistID uint64, now string) ([]VenueShowRow, error) {
	return r.forArtist(ctx, artistID, now, "<=")
}

// UpcomingForArtist returns the artist's shows with start_time > now.
func (r *ShowRepo) UpcomingForArtist(ctx context.Context, artistID uint64, now string) ([]VenueShowRow, error) {
	return r.forArtist(ctx, artistID, now, ">")
}
