package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sneakshop/backend/internal/cart"
	"github.com/sneakshop/backend/internal/models"
	"github.com/sneakshop/backend/pkg/logging"
)

type CartHTTP struct {
	Store *cart.Store
}

// cartKey identifies one customer's cart. Anonymous visitors send a
// generated session key, logged-in customers their account id.
func cartKey(c echo.Context) string {
	return c.Param("key")
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	items, err := h.Store.Get(ctx, cartKey(c))
	if err != nil {
		if errors.Is(err, cart.ErrValidation) {
			l.Warn("get_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, "cart key required")
		}
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req struct {
		ProductID string  `json:"product_id"`
		Title     string  `json:"title"`
		Brand     string  `json:"brand"`
		Price     float64 `json:"price"`
		Image     string  `json:"image"`
		Size      string  `json:"size"`
		Color     string  `json:"color"`
		Quantity  int     `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item := models.CartItem{
		CartKey:   cartKey(c),
		ProductID: req.ProductID,
		Title:     req.Title,
		Brand:     req.Brand,
		Price:     req.Price,
		Image:     req.Image,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	}
	if err := h.Store.Add(ctx, &item); err != nil {
		if errors.Is(err, cart.ErrValidation) {
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("cart_item_added", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) RemoveOneFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_one")

	var req struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	deleted, item, err := h.Store.RemoveOne(ctx, cartKey(c), req.ProductID, req.Size, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrNotFound):
			l.Warn("remove_from_cart_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "item not found")
		case errors.Is(err, cart.ErrValidation):
			l.Warn("remove_from_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		default:
			l.Error("remove_from_cart_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	if deleted {
		return c.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Store.Clear(ctx, cartKey(c)); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("cart_cleared")
	return c.JSON(http.StatusOK, "cart cleared")
}
