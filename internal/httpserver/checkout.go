package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sneakshop/backend/internal/checkout"
	"github.com/sneakshop/backend/pkg/logging"
)

type CheckoutHTTP struct {
	Svc *checkout.Service
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	var req checkout.Params
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, checkout.Result{Error: "invalid body", Kind: checkout.KindValidation})
	}

	res := h.Svc.Checkout(ctx, req)
	if !res.Success {
		status := statusForKind(res.Kind)
		l.Warn("checkout_failed", "status", status, "kind", res.Kind, "error", res.Error)
		return c.JSON(status, res)
	}

	l.Info("checkout_success", "order_id", res.OrderID)
	return c.JSON(http.StatusOK, res)
}

func statusForKind(kind checkout.Kind) int {
	switch kind {
	case checkout.KindValidation:
		return http.StatusBadRequest
	case checkout.KindStock:
		return http.StatusConflict
	case checkout.KindPayment:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
