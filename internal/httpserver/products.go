package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sneakshop/backend/internal/catalog"
	"github.com/sneakshop/backend/pkg/logging"
)

type ProductHTTP struct {
	Svc *catalog.Service
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	products, err := h.Svc.List(ctx, c.QueryParam("brand"), limit, offset)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	p, err := h.Svc.BySlug(ctx, c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			l.Warn("get_product_error", "status", 404, "slug", c.Param("slug"))
			return c.JSON(http.StatusNotFound, "product not found")
		case errors.Is(err, catalog.ErrValidation):
			return c.JSON(http.StatusBadRequest, err.Error())
		default:
			l.Error("get_product_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) GetVariants(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.variants")

	p, err := h.Svc.BySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.JSON(http.StatusNotFound, "product not found")
		}
		l.Error("get_variants_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	variants, err := h.Svc.Variants(ctx, p.ID)
	if err != nil {
		l.Error("get_variants_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, variants)
}
