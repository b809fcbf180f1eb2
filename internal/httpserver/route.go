package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	CheckoutHandler *CheckoutHTTP
	CartHandler     *CartHTTP
	OrderHandler    *OrderHTTP
	ProductHandler  *ProductHTTP
	CouponHandler   *CouponHTTP
	TradeInHandler  *TradeInHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/checkout", d.CheckoutHandler.Checkout)

	e.GET("/products", d.ProductHandler.ListProducts)
	e.GET("/products/:slug", d.ProductHandler.GetProduct)
	e.GET("/products/:slug/variants", d.ProductHandler.GetVariants)

	cart := e.Group("/cart/:key")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.DELETE("/items", d.CartHandler.RemoveOneFromCart)

	e.GET("/orders", d.OrderHandler.ListOrders)
	e.GET("/orders/:id", d.OrderHandler.GetOrder)
	e.POST("/payment/confirm", d.OrderHandler.ConfirmPayment)

	e.POST("/coupons/apply", d.CouponHandler.ApplyCoupon)

	e.POST("/reprises", d.TradeInHandler.SubmitTradeIn)
	e.GET("/reprises/:reference", d.TradeInHandler.GetTradeIn)
	e.PATCH("/reprises/:id/status", d.TradeInHandler.UpdateTradeInStatus)
}
