package handler // handler contains the HTTP handlers for the reservation API

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// normalizeDate validates a calendar date and returns it as "2006-01-02".
func normalizeDate(s string) (string, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// normalizeTime validates a clock time, with or without seconds, and
// returns it in the "15:04:05" form MySQL TIME columns use.
func normalizeTime(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), true
		}
	}
	return "", false
}

// clockTime trims a stored "15:04:05" value down to "15:04" for display.
func clockTime(s string) string {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04")
	}
	return s
}

// monthYear reads and validates the month/year pair from the query string.
func monthYear(c echo.Context) (month, year int, ok bool) {
	m, errM := strconv.Atoi(c.QueryParam("month"))
	y, errY := strconv.Atoi(c.QueryParam("year"))
	if errM != nil || errY != nil || m < 1 || m > 12 || y < 1000 || y > 9999 {
		return 0, 0, false
	}
	return m, y, true
}

// bookingJSON renders a booking with its date and time normalized to the
// fixed textual form used across all responses.
func bookingJSON(b model.Booking) echo.Map {
	return echo.Map{
		"ref_number":  b.RefNumber,
		"phone":       b.Phone,
		"email":       b.Email,
		"family_name": b.FamilyName,
		"table":       b.TableNo,
		"bkg_date":    b.Date.Format("2006-01-02"),
		"bkg_time":    clockTime(b.Time),
	}
}
