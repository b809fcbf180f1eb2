package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sneakshop/backend/internal/events"
	"github.com/sneakshop/backend/internal/models"
	"github.com/sneakshop/backend/internal/order"
	"github.com/sneakshop/backend/pkg/logging"
)

type OrderHTTP struct {
	Svc      *order.Service
	Producer *events.Producer
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	o, err := h.Svc.ByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "order_id", c.Param("id"))
			return c.JSON(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, "email required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.Svc.ByCustomer(ctx, email, limit, offset)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, orders)
}

// ConfirmPayment applies the payment processor's outcome to an order.
// Signature verification of the upstream callback happens before this
// handler, at the edge that terminates the provider webhook.
func (h *OrderHTTP) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.confirm_payment")

	var req struct {
		OrderID string             `json:"order_id"`
		Status  models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("confirm_payment_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	switch req.Status {
	case models.OrderStatusPaid, models.OrderStatusFailed, models.OrderStatusCancelled:
	default:
		l.Warn("confirm_payment_error", "status", 400, "requested", req.Status)
		return c.JSON(http.StatusBadRequest, "status must be paid, failed or cancelled")
	}

	o, err := h.Svc.UpdateStatus(ctx, req.OrderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			l.Warn("confirm_payment_error", "status", 404, "order_id", req.OrderID)
			return c.JSON(http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrTransition):
			l.Warn("confirm_payment_error", "status", 409, "error", err)
			return c.JSON(http.StatusConflict, err.Error())
		default:
			l.Error("confirm_payment_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	h.publish(c, map[string]any{
		"type":     "order_status_changed",
		"order_id": o.ID,
		"status":   o.Status,
	})

	l.Info("order_status_updated", "order_id", o.ID, "status", o.Status)
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, event["order_id"].(string), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "error", err)
	}
}
