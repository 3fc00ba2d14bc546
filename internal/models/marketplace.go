package models

import "time"

// CartItem — позиция корзины.
type CartItem struct {
	ID        string    `json:"id"`
	Food      Food      `json:"food"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Subtotal  float64   `json:"subtotal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddToCartRequest — POST /marketplace/cart/add/.
type AddToCartRequest struct {
	FoodID   string `json:"food_id"`
	Quantity int    `json:"quantity"`
}

// UpdateCartItemRequest — PATCH /marketplace/cart/{id}/update/.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// OrderItem — снимок позиции корзины на момент заказа.
type OrderItem struct {
	FoodName  string  `json:"food_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Order — заказ пользователя.
type Order struct {
	ID              string      `json:"id"`
	OrderItems      []OrderItem `json:"order_items"`
	TotalAmount     float64     `json:"total_amount"`
	Status          string      `json:"status"`
	DeliveryAddress string      `json:"delivery_address"`
	Notes           string      `json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// CreateOrderRequest — POST /marketplace/orders/create/ (заказ из текущей корзины).
type CreateOrderRequest struct {
	DeliveryAddress string `json:"delivery_address"`
	Notes           string `json:"notes,omitempty"`
}
