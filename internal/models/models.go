package models

import "time"

type Product struct {
	ID          string  `gorm:"primaryKey"          json:"id"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string  `gorm:"not null"            json:"title"`
	Brand       string  `gorm:"index"               json:"brand"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"            json:"price"`
	Image       string  `json:"image"`
	Featured    bool    `gorm:"default:false"       json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductVariant carries the sellable stock per size/color combination.
type ProductVariant struct {
	ID        uint   `gorm:"primaryKey"                                  json:"id"`
	ProductID string `gorm:"index:idx_variant,unique;not null"           json:"product_id"`
	Size      string `gorm:"index:idx_variant,unique;not null"           json:"size"`
	Color     string `gorm:"index:idx_variant,unique;not null"           json:"color"`
	Stock     int    `gorm:"not null;default:0;check:stock >= 0"         json:"stock"`
}

// CartLine is one purchasable line as submitted to checkout. It is a
// value object, not a table: the server-side cart persists CartItem
// rows and converts them to lines when the checkout starts.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

type CartItem struct {
	ID        uint    `gorm:"primaryKey"                         json:"id"`
	CartKey   string  `gorm:"index:idx_cart_line,unique;not null" json:"cart_key"`
	ProductID string  `gorm:"index:idx_cart_line,unique;not null" json:"product_id"`
	Size      string  `gorm:"index:idx_cart_line,unique"          json:"size"`
	Color     string  `gorm:"index:idx_cart_line,unique"          json:"color"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Price     float64 `gorm:"not null"                            json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `gorm:"not null;check:quantity > 0"         json:"quantity"`
}

type CouponKind string

const (
	CouponPercentage CouponKind = "percentage"
	CouponFixed      CouponKind = "fixed"
)

type Coupon struct {
	ID          uint       `gorm:"primaryKey"           json:"id"`
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`
	Kind        CouponKind `gorm:"not null"             json:"kind"`
	Value       float64    `gorm:"not null"             json:"value"`
	MinAmount   *float64   `json:"min_amount,omitempty"`
	MaxDiscount *float64   `json:"max_discount,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusFailed    OrderStatus = "failed"
)

type Address struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	ID              string      `gorm:"primaryKey"           json:"id"`
	OrderNumber     string      `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerEmail   string      `gorm:"index;not null"       json:"customer_email"`
	CustomerID      *string     `gorm:"index"                json:"customer_id,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"   json:"items"`
	Subtotal        float64     `gorm:"not null"             json:"subtotal"`
	Shipping        float64     `gorm:"not null"             json:"shipping"`
	Tax             float64     `gorm:"not null"             json:"tax"`
	Total           float64     `gorm:"not null"             json:"total"`
	Status          OrderStatus `gorm:"not null"             json:"status"`
	PaymentIntentID string      `gorm:"index"                json:"payment_intent_id,omitempty"`
	BillingAddress  *Address    `gorm:"embedded;embeddedPrefix:billing_"  json:"billing_address,omitempty"`
	ShippingAddress *Address    `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey"     json:"id"`
	OrderID   string  `gorm:"index;not null" json:"order_id"`
	ProductID string  `gorm:"not null"       json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `gorm:"not null"       json:"price"`
	Quantity  int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

type TradeInStatus string

const (
	TradeInPending    TradeInStatus = "pending"
	TradeInEvaluating TradeInStatus = "evaluating"
	TradeInAccepted   TradeInStatus = "accepted"
	TradeInRejected   TradeInStatus = "rejected"
	TradeInPaid       TradeInStatus = "paid"
	TradeInShipped    TradeInStatus = "shipped"
	TradeInReceived   TradeInStatus = "received"
	TradeInCancelled  TradeInStatus = "cancelled"
)

// TradeIn is a customer request to sell a pair back to the shop.
type TradeIn struct {
	ID              string        `gorm:"primaryKey"           json:"id"`
	Reference       string        `gorm:"uniqueIndex;not null" json:"reference"`
	CustomerEmail   string        `gorm:"index;not null"       json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone,omitempty"`
	CustomerID      *string       `gorm:"index"                json:"customer_id,omitempty"`
	Brand           string        `gorm:"not null"             json:"brand"`
	Model           string        `gorm:"not null"             json:"model"`
	Size            string        `gorm:"not null"             json:"size"`
	Color           string        `json:"color,omitempty"`
	Condition       string        `gorm:"not null"             json:"condition"`
	PurchasePrice   float64       `json:"purchase_price,omitempty"`
	OriginalBox     bool          `json:"original_box"`
	OriginalReceipt bool          `json:"original_receipt"`
	Photos          []string      `gorm:"serializer:json"      json:"photos"`
	Status          TradeInStatus `gorm:"not null"             json:"status"`
	ShippingAddress *Address      `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
