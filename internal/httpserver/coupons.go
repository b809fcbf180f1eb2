package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sneakshop/backend/internal/coupon"
	"github.com/sneakshop/backend/pkg/logging"
)

type CouponHTTP struct {
	Repo *coupon.GormRepo
}

type applyCouponResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ApplyCoupon is the input-time check: unlike the checkout itself,
// which silently prices an ineligible coupon at zero, this surfaces
// the explicit reason to the customer.
func (h *CouponHTTP) ApplyCoupon(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.apply")

	var req struct {
		Code     string  `json:"code"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("apply_coupon_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, "code required")
	}

	cp, err := h.Repo.GetCoupon(ctx, req.Code)
	if err != nil {
		l.Error("apply_coupon_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	if cp == nil {
		l.Warn("apply_coupon_unknown", "status", 404, "code", req.Code)
		return c.JSON(http.StatusNotFound, applyCouponResponse{Valid: false, Error: "coupon introuvable"})
	}

	if err := coupon.Validate(cp, req.Subtotal, time.Now()); err != nil {
		l.Info("apply_coupon_refused", "code", req.Code, "reason", err)
		return c.JSON(http.StatusBadRequest, applyCouponResponse{Valid: false, Error: err.Error()})
	}

	l.Info("apply_coupon_ok", "code", req.Code)
	return c.JSON(http.StatusOK, applyCouponResponse{Valid: true})
}
