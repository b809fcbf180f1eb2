package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sneakshop/backend/internal/events"
	"github.com/sneakshop/backend/internal/models"
	"github.com/sneakshop/backend/internal/tradein"
	"github.com/sneakshop/backend/pkg/logging"
)

type TradeInHTTP struct {
	Svc      *tradein.Service
	Producer *events.Producer
}

func (h *TradeInHTTP) SubmitTradeIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tradein.submit")

	var req struct {
		CustomerEmail   string          `json:"customer_email"`
		CustomerPhone   string          `json:"customer_phone"`
		Brand           string          `json:"brand"`
		Model           string          `json:"model"`
		Size            string          `json:"size"`
		Color           string          `json:"color"`
		Condition       string          `json:"condition"`
		PurchasePrice   float64         `json:"purchase_price"`
		OriginalBox     bool            `json:"original_box"`
		OriginalReceipt bool            `json:"original_receipt"`
		Photos          []string        `json:"photos"`
		ShippingAddress *models.Address `json:"shipping_address"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("submit_tradein_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	ti, err := h.Svc.Submit(ctx, tradein.SubmitParams{
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Brand:           req.Brand,
		Model:           req.Model,
		Size:            req.Size,
		Color:           req.Color,
		Condition:       req.Condition,
		PurchasePrice:   req.PurchasePrice,
		OriginalBox:     req.OriginalBox,
		OriginalReceipt: req.OriginalReceipt,
		Photos:          req.Photos,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		if errors.Is(err, tradein.ErrValidation) {
			l.Warn("submit_tradein_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("submit_tradein_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	if err := h.Producer.PublishEvent(ctx, ti.ID, map[string]any{
		"type":      "tradein_submitted",
		"reference": ti.Reference,
		"email":     ti.CustomerEmail,
	}); err != nil {
		l.Error("event_publish_failed", "error", err)
	}

	l.Info("tradein_submitted", "reference", ti.Reference)
	return c.JSON(http.StatusCreated, map[string]any{
		"success":   true,
		"reference": ti.Reference,
	})
}

func (h *TradeInHTTP) GetTradeIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tradein.get")

	ti, err := h.Svc.ByReference(ctx, c.Param("reference"))
	if err != nil {
		if errors.Is(err, tradein.ErrNotFound) {
			l.Warn("get_tradein_error", "status", 404, "reference", c.Param("reference"))
			return c.JSON(http.StatusNotFound, "trade-in not found")
		}
		l.Error("get_tradein_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, ti)
}

func (h *TradeInHTTP) UpdateTradeInStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tradein.update_status")

	var req struct {
		Status models.TradeInStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	ti, err := h.Svc.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, tradein.ErrNotFound):
			return c.JSON(http.StatusNotFound, "trade-in not found")
		case errors.Is(err, tradein.ErrTransition):
			l.Warn("update_tradein_error", "status", 409, "error", err)
			return c.JSON(http.StatusConflict, err.Error())
		default:
			l.Error("update_tradein_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("tradein_status_updated", "reference", ti.Reference, "status", ti.Status)
	return c.JSON(http.StatusOK, ti)
}
