package handler // handler package contains the artist listing handlers

import (
    "errors"
    "log"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/avezina/showbill/internal/repository"
)

// ArtistHandler bundles the repositories the artist routes need.
type ArtistHandler struct {
    ArtistRepo *repository.ArtistRepo // ArtistRepo provides artist persistence
    ShowRepo   *repository.ShowRepo   // ShowRepo provides the past/upcoming split
}

// NewArtistHandler constructs an ArtistHandler and panics if a dependency is nil.
func NewArtistHandler(artistRepo *repository.ArtistRepo, showRepo *repository.ShowRepo) *ArtistHandler {
    if artistRepo == nil || showRepo == nil {
        panic("nil repository passed to NewArtistHandler")
    }
    return &ArtistHandler{ArtistRepo: artistRepo, ShowRepo: showRepo}
}

// List handles GET /artists and returns every artist's (id, name) pair.
func (h *ArtistHandler) List(c echo.Context) error {
    items, err := h.ArtistRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"artists": items})
}

// Search handles POST /artists/search, the artist analogue of the venue
// search: case-insensitive substring on the name, empty term matches all.
func (h *ArtistHandler) Search(c echo.Context) error {
    term := c.FormValue("search_term")
    items, err := h.ArtistRepo.SearchByName(c.Request().Context(), term, nowDB())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "count":       len(items),
        "data":        items,
        "search_term": term,
    })
}

// Get handles GET /artists/:id with the past/upcoming show split.
func (h *ArtistHandler) Get(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    a, err := h.ArtistRepo.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrArtistNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    now := nowDB()
    past, err := h.ShowRepo.PastForArtist(ctx, id, now)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    upcoming, err := h.ShowRepo.UpcomingForArtist(ctx, id, now)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, newArtistDetail(a, past, upcoming))
}

// CreateForm handles GET /artists/create.
func (h *ArtistHandler) CreateForm(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"genres": genreChoices, "states": stateChoices})
}

// Create handles POST /artists/create with the same bind/validate/commit
// flow as venue creation.
func (h *ArtistHandler) Create(c echo.Context) error {
    a, problems := bindArtistForm(c)
    if len(problems) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "errors": problems})
    }
    if err := h.ArtistRepo.Create(c.Request().Context(), a); err != nil {
        log.Printf("create artist %q failed: %v", a.Name, err)
        if strings.Contains(err.Error(), "1062") {
            return c.JSON(http.StatusConflict, echo.Map{"error": "artist name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{
            "error": "An error occurred. Artist " + a.Name + " could not be listed.",
        })
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "message": "Artist " + a.Name + " was successfully listed!",
        "artist":  newArtistProfile(a),
    })
}

// EditForm handles GET /artists/:id/edit.
func (h *ArtistHandler) EditForm(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    a, err := h.ArtistRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrArtistNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "artist": newArtistProfile(a),
        "genres": genreChoices,
        "states": stateChoices,
    })
}

// Edit handles POST /artists/:id/edit with full-record overwrite semantics.
func (h *ArtistHandler) Edit(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    a, problems := bindArtistForm(c)
    if len(problems) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "errors": problems})
    }
    a.ID = id
    if err := h.ArtistRepo.Update(c.Request().Context(), a); err != nil {
        if errors.Is(err, repository.ErrArtistNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
        }
        log.Printf("update artist %d failed: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"artist": newArtistProfile(a)})
}
