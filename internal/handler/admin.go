package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// AdminHandler bundles dependencies for administrator endpoints.
type AdminHandler struct {
	Cfg      config.Config
	Admins   *repository.AdminRepo
	BookingRepo *repository.BookingRepo
}

func NewAdminHandler(cfg config.Config, a *repository.AdminRepo, b *repository.BookingRepo) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Admins: a, BookingRepo: b}
}

type adminLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login. An unknown username and a wrong
// password produce the same 401 so the endpoint does not reveal which
// admin accounts exist. On success a signed token is returned.
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	admin, err := h.Admins.GetByUsername(ctx, req.Username)
	if err == repository.ErrAdminNotFound {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := utils.NewAdminToken(h.Cfg.JWTSecret, admin.ID, admin.Username, h.Cfg.AdminTokenTTLH)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	_ = h.Admins.TouchLastLogin(ctx, admin.ID) // best effort

	return c.JSON(http.StatusOK, echo.Map{"token": token.Token, "expires": token.Exp})
}

// Bookings handles GET /api/admin/bookings behind the AdminAuth guard. It
// reuses the public listing so both views stay consistent.
func (h *AdminHandler) Bookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bookings, err := h.BookingRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingJSON(b))
	}
	return c.JSON(http.StatusOK, out)
}
