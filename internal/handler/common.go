package handler // handler defines http handlers for the listing routes

import (
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/avezina/showbill/internal/repository"
)

// genreChoices and stateChoices are the option lists served with the
// create/edit form metadata.  They mirror the multi-select and dropdown the
// site's forms present.
var genreChoices = []string{
    "Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
    "Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
    "Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
    "Soul", "Other",
}

var stateChoices = []string{
    "AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
    "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH",
    "NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN",
    "MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
    "WV", "WI", "WY",
}

// nowDB returns the current UTC instant in the stored timestamp format.
// The past/upcoming split is always computed against this wall-clock value
// at query time; it is never a stored flag.
func nowDB() string {
    return time.Now().UTC().Format(repository.TimeLayout)
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

// formBool interprets the checkbox spellings browsers and form libraries
// submit for a ticked box.
func formBool(v string) bool {
    switch strings.ToLower(strings.TrimSpace(v)) {
    case "y", "yes", "true", "on", "1":
        return true
    }
    return false
}

// acceptedTimeLayouts are the formats accepted for a submitted start_time,
// tried in order: the DB layout itself, RFC 3339, and the HTML
// datetime-local format.
var acceptedTimeLayouts = []string{
    repository.TimeLayout,
    time.RFC3339,
    "2006-01-02T15:04",
}

// parseStartTime normalizes a submitted start time into the DB layout in
// UTC.  An empty value defaults to the current time, matching the column
// default of the original schema.
func parseStartTime(raw string) (string, bool) {
    raw = strings.TrimSpace(raw)
    if raw == "" {
        return nowDB(), true
    }
    for _, layout := range acceptedTimeLayouts {
        if t, err := time.Parse(layout, raw); err == nil {
            return t.UTC().Format(repository.TimeLayout), true
        }
    }
    return "", false
}

// bindVenueForm maps the submitted form fields onto a Venue record,
// validating each named field individually.  It returns the bound record
// and a list of validation problems; a non-empty list means the record must
// not be persisted.  Every field is bound explicitly — no reflective
// assignment — so the mapping contract is visible here in one place.
func bindVenueForm(c echo.Context) (*repository.Venue, []string) {
    params, err := c.FormParams()
    if err != nil {
        return nil, []string{"malformed form body"}
    }
    var problems []string
    v := &repository.Venue{
        Name:               strings.TrimSpace(params.Get("name")),
        City:               strings.TrimSpace(params.Get("city")),
        State:              strings.TrimSpace(params.Get("state")),
        Address:            strings.TrimSpace(params.Get("address")),
        Phone:              strings.TrimSpace(params.Get("phone")),
        Genres:             repository.EncodeGenres(params["genres"]),
        ImageLink:          strings.TrimSpace(params.Get("image_link")),
        FacebookLink:       strings.TrimSpace(params.Get("facebook_link")),
        Website:            strings.TrimSpace(params.Get("website")),
        SeekingTalent:      formBool(params.Get("seeking_talent")),
        SeekingDescription: strings.TrimSpace(params.Get("seeking_description")),
    }
    if v.Name == "" {
        problems = append(problems, "name is required")
    }
    if v.City == "" {
        problems = append(problems, "city is required")
    }
    if v.State == "" {
        problems = append(problems, "state is required")
    }
    return v, problems
}

// bindArtistForm is the artist analogue of bindVenueForm.
func bindArtistForm(c echo.Context) (*repository.Artist, []string) {
    params, err := c.FormParams()
    if err != nil {
        return nil, []string{"malformed form body"}
    }
    var problems []string
    a := &repository.Artist{
        Name:               strings.TrimSpace(params.Get("name")),
        City:               strings.TrimSpace(params.Get("city")),
        State:              strings.TrimSpace(params.Get("state")),
        Phone:              strings.TrimSpace(params.Get("phone")),
        Genres:             repository.EncodeGenres(params["genres"]),
        ImageLink:          strings.TrimSpace(params.Get("image_link")),
        FacebookLink:       strings.TrimSpace(params.Get("facebook_link")),
        Website:            strings.TrimSpace(params.Get("website")),
        SeekingVenue:       formBool(params.Get("seeking_venue")),
        SeekingDescription: strings.TrimSpace(params.Get("seeking_description")),
    }
    if a.Name == "" {
        problems = append(problems, "name is required")
    }
    if a.City == "" {
        problems = append(problems, "city is required")
    }
    if a.State == "" {
        problems = append(problems, "state is required")
    }
    return a, problems
}

// bindShowForm maps the show creation form onto a Show record.  Both
// references are required; start_time defaults to now when absent.
func bindShowForm(c echo.Context) (*repository.Show, []string) {
    params, err := c.FormParams()
    if err != nil {
        return nil, []string{"malformed form body"}
    }
    var problems []string
    s := &repository.Show{}
    if id, err := strconv.ParseUint(strings.TrimSpace(params.Get("artist_id")), 10, 64); err == nil {
        s.ArtistID = id
    } else {
        problems = append(problems, "artist_id is required and must be numeric")
    }
    if id, err := strconv.ParseUint(strings.TrimSpace(params.Get("venue_id")), 10, 64); err == nil {
        s.VenueID = id
    } else {
        problems = append(problems, "venue_id is required and must be numeric")
    }
    if start, ok := parseStartTime(params.Get("start_time")); ok {
        s.StartTime = start
    } else {
        problems = append(problems, "start_time is not a recognized timestamp")
    }
    return s, problems
}

// venueProfile is the venue view model shared by the detail and edit-form
// responses.  Genres are decoded into individual labels at read time.
type venueProfile struct {
    ID                 uint64   `json:"id"`
    Name               string   `json:"name"`
    Genres             []string `json:"genres"`
    Address            string   `json:"address"`
    City               string   `json:"city"`
    State              string   `json:"state"`
    Phone              string   `json:"phone"`
    Website            string   `json:"website"`
    FacebookLink       string   `json:"facebook_link"`
    SeekingTalent      bool     `json:"seeking_talent"`
    SeekingDescription string   `json:"seeking_description"`
    ImageLink          string   `json:"image_link"`
}

func newVenueProfile(v *repository.Venue) venueProfile {
    return venueProfile{
        ID:                 v.ID,
        Name:               v.Name,
        Genres:             repository.DecodeGenres(v.Genres),
        Address:            v.Address,
        City:               v.City,
        State:              v.State,
        Phone:              v.Phone,
        Website:            v.Website,
        FacebookLink:       v.FacebookLink,
        SeekingTalent:      v.SeekingTalent,
        SeekingDescription: v.SeekingDescription,
        ImageLink:          v.ImageLink,
    }
}

// venueDetail extends the profile with the past/upcoming show split.
type venueDetail struct {
    venueProfile
    PastShows          []repository.ArtistShowRow `json:"past_shows"`
    PastShowsCount     int                        `json:"past_shows_count"`
    UpcomingShows      []repository.ArtistShowRow `json:"upcoming_shows"`
    UpcomingShowsCount int                        `json:"upcoming_shows_count"`
}

func newVenueDetail(v *repository.Venue, past, upcoming []repository.ArtistShowRow) venueDetail {
    return venueDetail{
        venueProfile:       newVenueProfile(v),
        PastShows:          past,
        PastShowsCount:     len(past),
        UpcomingShows:      upcoming,
        UpcomingShowsCount: len(upcoming),
    }
}

// artistProfile mirrors venueProfile for artists.
type artistProfile struct {
    ID                 uint64   `json:"id"`
    Name               string   `json:"name"`
    Genres             []string `json:"genres"`
    City               string   `json:"city"`
    State              string   `json:"state"`
    Phone              string   `json:"phone"`
    Website            string   `json:"website"`
    FacebookLink       string   `json:"facebook_link"`
    SeekingVenue       bool     `json:"seeking_venue"`
    SeekingDescription string   `json:"seeking_description"`
    ImageLink          string   `json:"image_link"`
}

func newArtistProfile(a *repository.Artist) artistProfile {
    return artistProfile{
        ID:                 a.ID,
        Name:               a.Name,
        Genres:             repository.DecodeGenres(a.Genres),
        City:               a.City,
        State:              a.State,
        Phone:              a.Phone,
        Website:            a.Website,
        FacebookLink:       a.FacebookLink,
        SeekingVenue:       a.SeekingVenue,
        SeekingDescription: a.SeekingDescription,
        ImageLink:          a.ImageLink,
    }
}

type artistDetail struct {
    artistProfile
    PastShows          []repository.VenueShowRow `json:"past_shows"`
    PastShowsCount     int                       `json:"past_shows_count"`
    UpcomingShows      []repository.VenueShowRow `json:"upcoming_shows"`
    UpcomingShowsCount int                       `json:"upcoming_shows_count"`
}

func newArtistDetail(a *repository.Artist, past, upcoming []repository.VenueShowRow) artistDetail {
    return artistDetail{
        artistProfile:      newArtistProfile(a),
        PastShows:          past,
        PastShowsCount:     len(past),
        UpcomingShows:      upcoming,
        UpcomingShowsCount: len(upcoming),
    }
}
