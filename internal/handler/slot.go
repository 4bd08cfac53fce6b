package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// SlotHandler bundles dependencies for the slot catalog endpoints.
type SlotHandler struct {
	Cfg   config.Config
	Slots *repository.SlotRepo
}

func NewSlotHandler(cfg config.Config, s *repository.SlotRepo) *SlotHandler {
	return &SlotHandler{Cfg: cfg, Slots: s}
}

type createSessionReq struct {
	Month     int     `json:"month"`
	Year      int     `json:"year"`
	SlotLimit *uint32 `json:"slot_limit"`
}

// CreateSession handles POST /api/bkgSession. It populates every
// (day, time) combination of the month with the given capacity. Re-running
// the same month is safe: existing slots keep their capacity.
func (h *SlotHandler) CreateSession(c echo.Context) error {
	var req createSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Month < 1 || req.Month > 12 || req.Year < 1000 || req.Year > 9999 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month and year are required"})
	}
	limit := uint32(h.Cfg.DefaultSlotLimit)
	if req.SlotLimit != nil {
		limit = *req.SlotLimit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	days, combos, err := h.Slots.CreateMonth(ctx, req.Month, req.Year, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "session successfully created",
		"days":         days,
		"combinations": combos,
	})
}

// ListSessions handles GET /api/getBkgSession and returns every slot of
// the requested month with its capacity.
func (h *SlotHandler) ListSessions(c echo.Context) error {
	month, year, ok := monthYear(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month and year are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	slots, err := h.Slots.ListByMonth(ctx, month, year)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(slots))
	for _, s := range slots {
		out = append(out, echo.Map{
			"bkg_date":   s.Date.Format("2006-01-02"),
			"bkg_time":   clockTime(s.Time),
			"slot_limit": s.SlotLimit,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// BookingSummary handles GET /api/bookingSummary. For every slot in the
// month it reports remaining availability as a date -> time -> count map.
// The figures are for display; the booking write path enforces capacity
// itself.
func (h *SlotHandler) BookingSummary(c echo.Context) error {
	month, year, ok := monthYear(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month and year are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	avail, err := h.Slots.AvailabilityByMonth(ctx, month, year)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	summary := make(map[string]map[string]int64)
	for _, a := range avail {
		day, ok := summary[a.Date]
		if !ok {
			day = make(map[string]int64)
			summary[a.Date] = day
		}
		day[clockTime(a.Time)] = a.Available
	}
	return c.JSON(http.StatusOK, summary)
}

// GetSlotLimit handles GET /api/getSlotLimit and returns the capacity rows
// for one (date, time) pair.
func (h *SlotHandler) GetSlotLimit(c echo.Context) error {
	date, okD := normalizeDate(c.QueryParam("bkg_date"))
	timeOfDay, okT := normalizeTime(c.QueryParam("bkg_time"))
	if !okD || !okT {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bkg_date and bkg_time are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	slots, err := h.Slots.GetByDateTime(ctx, date, timeOfDay)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(slots))
	for _, s := range slots {
		out = append(out, echo.Map{
			"bkg_date":   s.Date.Format("2006-01-02"),
			"bkg_time":   clockTime(s.Time),
			"slot_limit": s.SlotLimit,
		})
	}
	return c.JSON(http.StatusOK, out)
}
