package api

import (
	"context"
	"net/http"

	"github.com/pribylovaa/nutricare-client/internal/models"
)

// Marketplace — корзина и заказы.
type Marketplace struct {
	doer Doer
}

func (m *Marketplace) Cart(ctx context.Context) ([]models.CartItem, error) {
	return list[models.CartItem](ctx, m.doer, "/marketplace/cart/")
}

// AddToCart добавляет продукт; повторное добавление увеличивает количество.
func (m *Marketplace) AddToCart(ctx context.Context, foodID string, quantity int) (models.CartItem, error) {
	if err := validID("food_id", foodID); err != nil {
		return models.CartItem{}, err
	}
	if quantity < 1 {
		return models.CartItem{}, invalid("quantity", "must be at least 1")
	}

	var item models.CartItem
	in := models.AddToCartRequest{FoodID: foodID, Quantity: quantity}
	err := call(ctx, m.doer, http.MethodPost, "/marketplace/cart/add/", in, &item)
	return item, err
}

func (m *Marketplace) UpdateCartItem(ctx context.Context, id string, quantity int) (models.CartItem, error) {
	if err := validID("id", id); err != nil {
		return models.CartItem{}, err
	}
	if quantity < 1 {
		return models.CartItem{}, invalid("quantity", "must be at least 1")
	}

	var item models.CartItem
	in := models.UpdateCartItemRequest{Quantity: quantity}
	err := call(ctx, m.doer, http.MethodPatch, "/marketplace/cart/"+id+"/update/", in, &item)
	return item, err
}

func (m *Marketplace) RemoveCartItem(ctx context.Context, id string) error {
	if err := validID("id", id); err != nil {
		return err
	}

	return call(ctx, m.doer, http.MethodDelete, "/marketplace/cart/"+id+"/delete/", nil, nil)
}

func (m *Marketplace) Orders(ctx context.Context) ([]models.Order, error) {
	return list[models.Order](ctx, m.doer, "/marketplace/orders/")
}

// CreateOrder оформляет заказ из текущей корзины; корзина очищается бэкендом.
func (m *Marketplace) CreateOrder(ctx context.Context, in models.CreateOrderRequest) (models.Order, error) {
	if err := required("delivery_address", in.DeliveryAddress); err != nil {
		return models.Order{}, err
	}

	var o models.Order
	err := call(ctx, m.doer, http.MethodPost, "/marketplace/orders/create/", in, &o)
	return o, err
}
