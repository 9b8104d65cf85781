package repository

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestShowCreateVerifiesReferences(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)

	v := mustCreateVenue(t, venues, &Venue{Name: "Hall", City: "Boise", State: "ID"})
	a := mustCreateArtist(t, artists, &Artist{Name: "Trio", City: "Boise", State: "ID"})

	err := shows.Create(context.Background(), &Show{ArtistID: 999, VenueID: v.ID, StartTime: dbTime(0)})
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("create with missing artist err = %v, want ErrArtistNotFound", err)
	}
	err = shows.Create(context.Background(), &Show{ArtistID: a.ID, VenueID: 999, StartTime: dbTime(0)})
	if !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("create with missing venue err = %v, want ErrVenueNotFound", err)
	}
	// Nothing committed by the failed attempts.
	if n := countRows(t, db, "shows"); n != 0 {
		t.Fatalf("shows count after failed creates = %d, want 0", n)
	}

	s := mustCreateShow(t, shows, &Show{ArtistID: a.ID, VenueID: v.ID, StartTime: dbTime(time.Hour)})
	if s.ID == 0 {
		t.Fatal("create did not assign an id")
	}
	if n := countRows(t, db, "shows"); n != 1 {
		t.Fatalf("shows count = %d, want 1", n)
	}
}

func TestShowPastUpcomingSplit(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)

	v := mustCreateVenue(t, venues, &Venue{Name: "Hall", City: "Boise", State: "ID"})
	a := mustCreateArtist(t, artists, &Artist{Name: "Trio", City: "Boise", State: "ID", ImageLink: "img"})

	now := dbTime(0)
	mustCreateShow(t, shows, &Show{ArtistID: a.ID, VenueID: v.ID, StartTime: dbTime(-time.Hour)})
	mustCreateShow(t, shows, &Show{ArtistID: a.ID, VenueID: v.ID, StartTime: now}) // exactly now counts as past
	mustCreateShow(t, shows, &Show{ArtistID: a.ID, VenueID: v.ID, StartTime: dbTime(time.Hour)})

	past, err := shows.PastForVenue(context.Background(), v.ID, now)
	if err != nil {
		t.Fatalf("past for venue: %v", err)
	}
	upcoming, err := shows.UpcomingForVenue(context.Background(), v.ID, now)
	if err != nil {
		t.Fatalf("upcoming for venue: %v", err)
	}
	if len(past) != 2 || len(upcoming) != 1 {
		t.Fatalf("split = %d past / %d upcoming, want 2/1", len(past), len(upcoming))
	}
	if past[1].StartTime != now {
		t.Errorf("boundary show missing from past list")
	}
	if past[0].ArtistName != "Trio" || past[0].ArtistImageLink != "img" {
		t.Errorf("venue split row missing artist details: %+v", past[0])
	}

	// The artist's view mirrors the venue's.
	aPast, err := shows.PastForArtist(context.Background(), a.ID, now)
	if err != nil {
		t.Fatalf("past for artist: %v", err)
	}
	aUpcoming, err := shows.UpcomingForArtist(context.Background(), a.ID, now)
	if err != nil {
		t.Fatalf("upcoming for artist: %v", err)
	}
	if len(aPast) != 2 || len(aUpcoming) != 1 {
		t.Fatalf("artist split = %d past / %d upcoming, want 2/1", len(aPast), len(aUpcoming))
	}
	if aUpcoming[0].VenueName != "Hall" {
		t.Errorf("artist split row missing venue details: %+v", aUpcoming[0])
	}
}

func TestShowListAllJoinsAndOrders(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)

	v := mustCreateVenue(t, venues, &Venue{Name: "Hall", City: "Boise", State: "ID"})
	a := mustCreateArtist(t, artists, &Artist{Name: "Trio", City: "Boise", State: "ID", ImageLink: "img"})

	late := mustCreateShow(t, shows, &Show{ArtistID: a.ID, VenueID: v.ID, StartTime: dbTime(2 * time.Hour)})
	early := mustCreateShow(t, shows, &Show{ArtistID: a.ID, VenueID: v.ID, StartTime: dbTime(time.Hour)})
	_ = late

	rows, err := shows.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list shows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].StartTime != early.StartTime {
		t.Errorf("rows not ordered by start time: first = %s", rows[0].StartTime)
	}
	first := rows[0]
	if first.VenueID != v.ID || first.VenueName != "Hall" ||
		first.ArtistID != a.ID || first.ArtistName != "Trio" || first.ArtistImageLink != "img" {
		t.Errorf("joined row incomplete: %+v", first)
	}
}

func TestArtistSearchAndList(t *testing.T) {
	db := testDB(t)
	artists := NewArtistRepo(db)

	mustCreateArtist(t, artists, &Artist{Name: "Guns N Petals", City: "SF", State: "CA"})
	mustCreateArtist(t, artists, &Artist{Name: "The Petal Pushers", City: "SF", State: "CA"})
	mustCreateArtist(t, artists, &Artist{Name: "Quartet", City: "SF", State: "CA"})

	now := dbTime(0)
	got, err := artists.SearchByName(context.Background(), "PETAL", now)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("search = %d rows, want 2", len(got))
	}

	all, err := artists.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list artists: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("list = %d rows, want 3", len(all))
	}
	if all[0].Name != "Guns N Petals" {
		t.Errorf("list order: first = %q", all[0].Name)
	}
}

func TestArtistUpdateOverwrites(t *testing.T) {
	db := testDB(t)
	artists := NewArtistRepo(db)

	a := mustCreateArtist(t, artists, &Artist{Name: "Old", City: "SF", State: "CA", Phone: "555", SeekingVenue: true})
	err := artists.Update(context.Background(), &Artist{ID: a.ID, Name: "New", City: "LA", State: "CA"})
	if err != nil {
		t.Fatalf("update artist: %v", err)
	}
	got, err := artists.GetByID(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("get artist: %v", err)
	}
	if got.Name != "New" || got.City != "LA" || got.Phone != "" || got.SeekingVenue {
		t.Errorf("full overwrite not applied: %+v", got)
	}

	if err := artists.Update(context.Background(), &Artist{ID: 99, Name: "Ghost"}); !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("update missing artist err = %v, want ErrArtistNotFound", err)
	}
}
