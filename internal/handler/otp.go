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

// OTPHandler bundles dependencies for the email verification endpoints.
type OTPHandler struct {
	Cfg  config.Config
	OTPs *repository.OTPRepo
}

func NewOTPHandler(cfg config.Config, o *repository.OTPRepo) *OTPHandler {
	return &OTPHandler{Cfg: cfg, OTPs: o}
}

type requestOTPReq struct {
	Email string `json:"email"`
}

type verifyOTPReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// RequestOTP handles POST /api/request-otp. A fresh 6-digit code is stored
// for the email, superseding any previous one, and an event is published
// for the mail pipeline. The request reports success once the code is
// persisted; it does not wait for, or depend on, email delivery.
func (h *OTPHandler) RequestOTP(c echo.Context) error {
	var req requestOTPReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	code, err := utils.NewOTPCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate code failed"})
	}
	expiresAt := time.Now().UTC().Add(time.Duration(h.Cfg.OTPTTLMin) * time.Minute)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	vc := model.VerificationCode{Email: email, Code: code, ExpiresAt: expiresAt, IsValid: true}
	if err := h.OTPs.Upsert(ctx, vc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store code failed"})
	}

	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishOTPRequested(pubCtx, queue.OTPRequestedEvent{
			Email:       email,
			Code:        code,
			ExpiresAt:   expiresAt.Format(time.RFC3339),
			RequestedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{"message": "verification code sent"})
}

// VerifyOTP handles POST /api/verify-otp. It always answers 200 with a
// {success, message} payload: wrong code, expired code, already consumed
// code, unknown email and even internal failures all collapse into the
// same failure message, so the endpoint cannot be used as a code-guessing
// oracle and clients render one uniform message.
func (h *OTPHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "verification failed"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.TrimSpace(req.OTP)
	if email == "" || code == "" {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "verification failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ok, err := h.OTPs.Consume(ctx, email, code)
	if err != nil || !ok {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "verification failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "email verified"})
}
