package handler // handler package contains the venue listing handlers

import (
    "errors"
    "log"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/avezina/showbill/internal/repository"
)

// VenueHandler bundles the repositories the venue routes need.
type VenueHandler struct {
    VenueRepo *repository.VenueRepo // VenueRepo provides venue persistence
    ShowRepo  *repository.ShowRepo  // ShowRepo provides the past/upcoming split
}

// NewVenueHandler constructs a VenueHandler and panics if a dependency is nil.
func NewVenueHandler(venueRepo *repository.VenueRepo, showRepo *repository.ShowRepo) *VenueHandler {
    if venueRepo == nil || showRepo == nil {
        panic("nil repository passed to NewVenueHandler")
    }
    return &VenueHandler{VenueRepo: venueRepo, ShowRepo: showRepo}
}

// List handles GET /venues and returns all venues partitioned into
// (city, state) areas, each venue with its upcoming show count.
func (h *VenueHandler) List(c echo.Context) error {
    groups, err := h.VenueRepo.GroupedByCityState(c.Request().Context(), nowDB())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"areas": groups})
}

// Search handles POST /venues/search.  The search_term form field is
// matched case-insensitively as a substring; an empty term matches all.
func (h *VenueHandler) Search(c echo.Context) error {
    term := c.FormValue("search_term")
    items, err := h.VenueRepo.SearchByName(c.Request().Context(), term, nowDB())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "count":       len(items),
        "data":        items,
        "search_term": term,
    })
}

// Get handles GET /venues/:id and returns the venue's profile together
// with its shows split into past and upcoming relative to now.
func (h *VenueHandler) Get(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    v, err := h.VenueRepo.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    now := nowDB()
    past, err := h.ShowRepo.PastForVenue(ctx, id, now)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    upcoming, err := h.ShowRepo.UpcomingForVenue(ctx, id, now)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, newVenueDetail(v, past, upcoming))
}

// CreateForm handles GET /venues/create and returns the option lists the
// creation form is built from.
func (h *VenueHandler) CreateForm(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"genres": genreChoices, "states": stateChoices})
}

// Create handles POST /venues/create.  The submitted fields are bound and
// validated explicitly; on success the venue is committed in a single
// transaction and the success flash message returned.  On any persistence
// failure the cause is logged server-side and only a generic message is
// surfaced.
func (h *VenueHandler) Create(c echo.Context) error {
    v, problems := bindVenueForm(c)
    if len(problems) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "errors": problems})
    }
    if err := h.VenueRepo.Create(c.Request().Context(), v); err != nil {
        log.Printf("create venue %q failed: %v", v.Name, err)
        if strings.Contains(err.Error(), "1062") {
            return c.JSON(http.StatusConflict, echo.Map{"error": "venue name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{
            "error": "An error occurred. Venue " + v.Name + " could not be listed.",
        })
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "message": "Venue " + v.Name + " was successfully listed!",
        "venue":   newVenueProfile(v),
    })
}

// Delete handles DELETE /venues/:id.  A missing id is a 404, never a
// silent no-op; the venue's shows are removed in the same transaction.
func (h *VenueHandler) Delete(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.VenueRepo.DeleteByID(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        log.Printf("delete venue %d failed: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete venue"})
    }
    return c.NoContent(http.StatusNoContent)
}

// EditForm handles GET /venues/:id/edit and returns the venue's current
// field values alongside the form option lists.
func (h *VenueHandler) EditForm(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    v, err := h.VenueRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "venue":  newVenueProfile(v),
        "genres": genreChoices,
        "states": stateChoices,
    })
}

// Edit handles POST /venues/:id/edit.  The submission carries the complete
// field set and overwrites the record wholesale — this is not a partial
// patch.
func (h *VenueHandler) Edit(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    v, problems := bindVenueForm(c)
    if len(problems) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "errors": problems})
    }
    v.ID = id
    if err := h.VenueRepo.Update(c.Request().Context(), v); err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        log.Printf("update venue %d failed: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"venue": newVenueProfile(v)})
}
