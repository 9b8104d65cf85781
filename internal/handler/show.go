package handler // handler package contains the show listing handlers

import (
    "context"
    "errors"
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/avezina/showbill/internal/queue"
    "github.com/avezina/showbill/internal/repository"
    queue_publisher "github.com/avezina/showbill/internal/service"
)

// ShowHandler bundles the repositories the show routes need.  Artist and
// venue repositories back the creation form's pickers and the broker event
// payload.
type ShowHandler struct {
    ShowRepo   *repository.ShowRepo
    ArtistRepo *repository.ArtistRepo
    VenueRepo  *repository.VenueRepo
    // PublishEvents controls whether successful creations emit a
    // show.listed event to the broker.  Disabled in tests.
    PublishEvents bool
}

// NewShowHandler constructs a ShowHandler and panics if a dependency is nil.
func NewShowHandler(showRepo *repository.ShowRepo, artistRepo *repository.ArtistRepo, venueRepo *repository.VenueRepo) *ShowHandler {
    if showRepo == nil || artistRepo == nil || venueRepo == nil {
        panic("nil repository passed to NewShowHandler")
    }
    return &ShowHandler{ShowRepo: showRepo, ArtistRepo: artistRepo, VenueRepo: venueRepo}
}

// List handles GET /shows and returns every show joined with its venue
// name, artist name and artist image.
func (h *ShowHandler) List(c echo.Context) error {
    rows, err := h.ShowRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"shows": rows})
}

// CreateForm handles GET /shows/create and returns the artist and venue
// pickers the form is built from.
func (h *ShowHandler) CreateForm(c echo.Context) error {
    ctx := c.Request().Context()
    artists, err := h.ArtistRepo.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    venues, err := h.VenueRepo.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"artists": artists, "venues": venues})
}

// Create handles POST /shows/create.  Both referenced records are verified
// inside the creation transaction; a dangling reference is a 404, not a
// committed orphan.  On success a show.listed event is published for
// downstream consumers — a broker failure never fails the request.
func (h *ShowHandler) Create(c echo.Context) error {
    s, problems := bindShowForm(c)
    if len(problems) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "errors": problems})
    }
    ctx := c.Request().Context()
    if err := h.ShowRepo.Create(ctx, s); err != nil {
        if errors.Is(err, repository.ErrArtistNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
        }
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        log.Printf("create show failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred. Show could not be listed."})
    }

    if h.PublishEvents {
        ev := queue.ShowListedEvent{
            ShowID:    s.ID,
            ArtistID:  s.ArtistID,
            VenueID:   s.VenueID,
            StartTime: s.StartTime,
            ListedAt:  nowDB(),
        }
        if a, err := h.ArtistRepo.GetByID(ctx, s.ArtistID); err == nil {
            ev.ArtistName = a.Name
        }
        if v, err := h.VenueRepo.GetByID(ctx, s.VenueID); err == nil {
            ev.VenueName = v.Name
        }
        // Detached context: the publish outlives the request.
        go func() { _ = queue_publisher.PublishShowListed(context.Background(), ev) }()
    }

    return c.JSON(http.StatusCreated, echo.Map{"message": "Show was successfully listed!"})
}
