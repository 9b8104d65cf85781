package handler_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"

	"github.com/avezina/showbill/internal/config"
	"github.com/avezina/showbill/internal/handler"
	"github.com/avezina/showbill/internal/repository"
	"github.com/avezina/showbill/internal/router"
)

// Handler tests run the full route → handler → repository stack against a
// real SQLite database, exactly as the repository tests do.

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

var testCfg = config.Config{
	Env:          "test",
	JWTSecret:    "test-secret",
	AccessTTLMin: 15,
	BcryptCost:   4,
}

// newTestApp builds the wired Echo instance over a fresh database.  The
// guard middleware is optional, matching the production wiring.
func newTestApp(t *testing.T, guard echo.MiddlewareFunc) *echo.Echo {
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

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)
	userRepo := repository.NewUserRepo(db)

	e := echo.New()
	e.HTTPErrorHandler = router.ErrorHandler()
	router.RegisterRoutes(e,
		handler.NewVenueHandler(venueRepo, showRepo),
		handler.NewArtistHandler(artistRepo, showRepo),
		handler.NewShowHandler(showRepo, artistRepo, venueRepo),
		guard)
	router.RegisterAuth(e, handler.NewAuthHandler(testCfg, userRepo))
	return e
}

func doForm(e *echo.Echo, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doJSON(e *echo.Echo, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = strings.NewReader(string(b))
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doGet(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func venueForm(name, city, state string, genres ...string) url.Values {
	form := url.Values{}
	form.Set("name", name)
	form.Set("city", city)
	form.Set("state", state)
	for _, g := range genres {
		form.Add("genres", g)
	}
	return form
}

func artistForm(name, city, state string) url.Values {
	form := url.Values{}
	form.Set("name", name)
	form.Set("city", city)
	form.Set("state", state)
	return form
}
