package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// refAllocRetries bounds how many fresh reference codes are tried when an
// insert hits the unique constraint before the request fails.
const refAllocRetries = 3

// BookingHandler bundles dependencies for the booking endpoints.
type BookingHandler struct {
	Cfg      config.Config
	Bookings *repository.BookingRepo
}

func NewBookingHandler(cfg config.Config, b *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{Cfg: cfg, Bookings: b}
}

type makeBookingReq struct {
	Date       string `json:"bkg_date"`
	Time       string `json:"bkg_time"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	FamilyName string `json:"family_name"`
	TableNo    int    `json:"table"`
}

// MakeBooking handles POST /api/makeBooking. Capacity is enforced inside
// the repository transaction; a full slot answers 409 and an unknown slot
// 404. On success the newly allocated reference code is returned.
func (h *BookingHandler) MakeBooking(c echo.Context) error {
	var req makeBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date, okD := normalizeDate(req.Date)
	timeOfDay, okT := normalizeTime(req.Time)
	if !okD || !okT {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bkg_date and bkg_time are required"})
	}
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	if req.Phone == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone and email are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b := model.Booking{
		Phone:      req.Phone,
		Email:      req.Email,
		FamilyName: strings.TrimSpace(req.FamilyName),
		TableNo:    req.TableNo,
	}
	var err error
	for attempt := 0; attempt < refAllocRetries; attempt++ {
		b.RefNumber, err = utils.NewRefCode(h.Cfg.RefCodeLength)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocate reference failed"})
		}
		err = h.Bookings.Create(ctx, &b, date, timeOfDay)
		if err != repository.ErrDuplicateRef {
			break
		}
	}
	switch err {
	case nil:
	case repository.ErrSlotNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no bookable slot for that date and time"})
	case repository.ErrSlotFull:
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot is fully booked"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	// Notify downstream consumers; delivery is best-effort and never
	// blocks or fails the booking.
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishBookingConfirmed(pubCtx, queue.BookingConfirmedEvent{
			RefNumber:   b.RefNumber,
			Email:       b.Email,
			Phone:       b.Phone,
			FamilyName:  b.FamilyName,
			Date:        date,
			Time:        clockTime(timeOfDay),
			ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{"ref_number": b.RefNumber})
}

// GetBooking handles GET /api/getBooking. Lookup is by reference code,
// tightened to an exact (reference, family name) match when a family name
// is supplied. A miss is a success-shaped not-found payload so client UIs
// can render a friendly message without treating it as a transport error.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	ref := strings.TrimSpace(c.QueryParam("ref_num"))
	familyName := strings.TrimSpace(c.QueryParam("family_name"))
	if ref == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ref_num is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var b *model.Booking
	var err error
	if familyName != "" {
		b, err = h.Bookings.GetByRefAndFamily(ctx, ref, familyName)
	} else {
		b, err = h.Bookings.GetByRef(ctx, ref)
	}
	if err == repository.ErrBookingNotFound {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "no booking found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resp := bookingJSON(*b)
	resp["success"] = true
	return c.JSON(http.StatusOK, resp)
}

// GetAllBookings handles GET /api/getAllBookings and returns every booking
// with normalized date/time formatting. An empty array, not an error, when
// none exist.
func (h *BookingHandler) GetAllBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bookings, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingJSON(b))
	}
	return c.JSON(http.StatusOK, out)
}

type updateBookingReq struct {
	RefNumber  string `json:"ref_num"`
	Date       string `json:"bkg_date"`
	Time       string `json:"bkg_time"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	FamilyName string `json:"family_name"`
	TableNo    int    `json:"table"`
}

// UpdateBooking handles PUT /api/updateBooking. Only supplied fields are
// modified; at least one must be present. A zero table number counts as
// not provided, so a table preference cannot be reset to zero here.
// Changing the date or time moves the booking, which goes through the
// same capacity check as creation: a full target slot answers 409 and an
// unknown one 404.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	var req updateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RefNumber = strings.TrimSpace(req.RefNumber)
	if req.RefNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ref_num is required"})
	}

	u := repository.BookingUpdate{
		Phone:      strings.TrimSpace(req.Phone),
		Email:      strings.TrimSpace(req.Email),
		FamilyName: strings.TrimSpace(req.FamilyName),
		TableNo:    req.TableNo,
	}
	if req.Date != "" {
		date, ok := normalizeDate(req.Date)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bkg_date"})
		}
		u.Date = date
	}
	if req.Time != "" {
		timeOfDay, ok := normalizeTime(req.Time)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bkg_time"})
		}
		u.Time = timeOfDay
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	switch err := h.Bookings.Update(ctx, req.RefNumber, u); err {
	case nil:
		return c.JSON(http.StatusCreated, echo.Map{"message": "booking updated"})
	case repository.ErrNoFields:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one field to update is required"})
	case repository.ErrBookingNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case repository.ErrSlotNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no bookable slot for that date and time"})
	case repository.ErrSlotFull:
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot is fully booked"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// CancelBooking handles DELETE /api/cancelBooking. Existence is checked
// first; a missing reference answers 404.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	ref := strings.TrimSpace(c.QueryParam("ref_num"))
	if ref == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ref_num is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	switch err := h.Bookings.Delete(ctx, ref); err {
	case nil:
	case repository.ErrBookingNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}

	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishBookingCancelled(pubCtx, queue.BookingCancelledEvent{
			RefNumber:   ref,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled", "ref_number": ref})
}
