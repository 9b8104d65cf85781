package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	got := dsn("app", "pw", "db.internal", "3306", "showbill")
	want := "app:pw@tcp(db.internal:3306)/showbill?charset=utf8mb4"
	if got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}

	// An empty password drops the colon entirely.
	got = dsn("app", "", "localhost", "3306", "showbill")
	want = "app@tcp(localhost:3306)/showbill?charset=utf8mb4"
	if got != want {
		t.Errorf("passwordless dsn = %q, want %q", got, want)
	}

	// start_time must scan as its stored text form, so the driver's
	// time.Time conversion stays off.
	if strings.Contains(got, "parseTime") {
		t.Error("dsn enables parseTime; timestamps would be reformatted on scan")
	}
}
