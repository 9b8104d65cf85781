// Package repository contains data access logic separated from HTTP handlers.
// This file defines the Venue model and repository methods for CRUD, search
// and the grouped city/state listing.  A Venue represents a place that hosts
// performances and owns zero or more shows through shows.venue_id.
//
// All timestamp parameters are strings in the DB format "2006-01-02 15:04:05"
// (UTC).  Queries avoid dialect-specific functions so the same SQL runs on
// MySQL in production and SQLite in tests; "now" is always supplied by the
// caller instead of NOW().
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
	"strings"      // strings builds case-insensitive search patterns
)

// TimeLayout is the timestamp format stored in the database.  Lexicographic
// comparison of two values in this layout matches chronological order, which
// the past/upcoming split relies on.
const TimeLayout = "2006-01-02 15:04:05"

// Venue represents a venue entity persisted in the database.  The ID field
// is the primary key and is auto-incremented by the DB.  Genres holds the
// comma-joined encoding (see genres.go).
type Venue struct {
	ID                 uint64 // ID is the unique identifier of the venue
	Name               string // Name is the human-friendly name of the venue
	City               string // City where the venue is located
	State              string // State where the venue is located
	Address            string // Address is the street address
	Phone              string // Phone is a free-form contact number
	Genres             string // Genres is the comma-joined genre list
	ImageLink          string // ImageLink points at a promotional image
	FacebookLink       string // FacebookLink points at the venue's page
	Website            string // Website is the venue's own site
	SeekingTalent      bool   // SeekingTalent marks venues looking for artists
	SeekingDescription string // SeekingDescription explains what is sought
}

// VenueSummary is a listing/search row: the venue plus its count of
// upcoming shows at query time.
type VenueSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// VenueRef is the minimal (id, name) pair used by the show creation form's
// venue picker.
type VenueRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// VenueGroup is one (city, state) partition of the grouped listing.
type VenueGroup struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, name, city, state, address, phone, genres,
	image_link, facebook_link, website, seeking_talent, seeking_description`

func scanVenue(row *sql.Row, v *Venue) error {
	return row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone,
		&v.Genres, &v.ImageLink, &v.FacebookLink, &v.Website,
		&v.SeekingTalent, &v.SeekingDescription)
}

// Create inserts a new venue inside a transaction.  On success the venue's
// ID field is populated with the auto-generated value.  Any failure rolls
// the transaction back so no partial write survives.
func (r *VenueRepo) Create(ctx context.Context, v *Venue) error {
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
	const q = `INSERT INTO venues
	    (name, city, state, address, phone, genres, image_link, facebook_link, website, seeking_talent, seeking_description)
	    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Genres,
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found so handlers can translate the miss into a 404 instead of
// dereferencing a nil record.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	var v Venue
	if err := scanVenue(r.db.QueryRowContext(ctx, q, id), &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Update overwrites every mutable field of the venue identified by v.ID.
// This is a full-record overwrite, not a partial patch: edit submissions
// carry the complete field set.  ErrVenueNotFound is returned when the id
// does not exist; the transaction is rolled back on any failure.
func (r *VenueRepo) Update(ctx context.Context, v *Venue) error {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, v.ID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	const q = `UPDATE venues SET name = ?, city = ?, state = ?, address = ?, phone = ?,
	    genres = ?, image_link = ?, facebook_link = ?, website = ?,
	    seeking_talent = ?, seeking_description = ?
	    WHERE id = ?`
	_, err = tx.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Genres,
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription,
		v.ID)
	return err
}

// DeleteByID removes a venue and the shows that reference it within one
// transaction so no orphan shows survive.  It returns ErrVenueNotFound when
// the id does not exist; a missing id is an error, never a silent no-op.
func (r *VenueRepo) DeleteByID(ctx context.Context, id uint64) error {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	return err
}

// GroupedByCityState partitions all venues by distinct (city, state) pairs.
// Each venue row carries its count of upcoming shows relative to the
// provided instant.  Groups are ordered by city then state, venues within a
// group by name then id, so the listing is deterministic rather than
// store-dependent.
func (r *VenueRepo) GroupedByCityState(ctx context.Context, now string) ([]VenueGroup, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
	        (SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming
	    FROM venues v
	    ORDER BY v.city, v.state, v.name, v.id`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []VenueGroup
	for rows.Next() {
		var (
			s           VenueSummary
			city, state string
		)
		if err := rows.Scan(&s.ID, &s.Name, &city, &state, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		n := len(groups)
		if n == 0 || groups[n-1].City != city || groups[n-1].State != state {
			groups = append(groups, VenueGroup{City: city, State: state})
			n++
		}
		groups[n-1].Venues = append(groups[n-1].Venues, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

// ListAll returns the (id, name) pair of every venue ordered by name then
// id.  It backs the show creation form's venue picker.
func (r *VenueRepo) ListAll(ctx context.Context) ([]VenueRef, error) {
	const q = `SELECT id, name FROM venues ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]VenueRef, 0)
	for rows.Next() {
		var v VenueRef
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName performs a case-insensitive substring match on venue names.
// An empty term matches every row.  Results are ordered by name then id and
// each carries the count of upcoming shows relative to the given instant.
func (r *VenueRepo) SearchByName(ctx context.Context, term, now string) ([]VenueSummary, error) {
	const q = `SELECT v.id, v.name,
	        (SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming
	    FROM venues v
	    WHERE LOWER(v.name) LIKE ?
	    ORDER BY v.name, v.id`
	pattern := "%" + strings.ToLower(term) + "%"
	rows, err := r.db.QueryContext(ctx, q, now, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]VenueSummary, 0)
	for rows.Next() {
		var s VenueSummary
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
