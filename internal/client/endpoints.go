package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/inkhouse/storefront/internal/checkout"
	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/money"
	"github.com/inkhouse/storefront/internal/service"
)

// GetProducts fetches every product record
func (c *Client) GetProducts(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListProducts lets the client act as a catalog source
func (c *Client) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return c.GetProducts(ctx)
}

// GetProductByID returns nil without error when the product does not exist
// or the backend answers 204
func (c *Client) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product *domain.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (c *Client) CreateProduct(ctx context.Context, in service.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in service.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// SearchProducts matches product titles containing name
func (c *Client) SearchProducts(ctx context.Context, name string) ([]*domain.Product, error) {
	var products []*domain.Product
	path := "/products/search?name=" + url.QueryEscape(name)
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetOrders(ctx context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderByID returns nil without error when the order does not exist or
// the backend answers 204
func (c *Client) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	var order *domain.Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (c *Client) GetOrdersByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/user/%d", userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, req checkout.OrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/orders/%d/status?status=%s", id, url.QueryEscape(string(status)))
	if err := c.do(ctx, http.MethodPatch, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil)
}

func (c *Client) GetUsers(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := c.do(ctx, http.MethodGet, "/users/getUsers", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SubmitOrder places a checkout order through the backend
func (c *Client) SubmitOrder(ctx context.Context, req checkout.OrderRequest) (*checkout.Confirmation, error) {
	order, err := c.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	return &checkout.Confirmation{
		OrderID:   order.ID,
		Reference: order.Reference.String(),
		Status:    order.Status.Display(),
		Total:     money.Cents(order.TotalCents).Dollars(),
	}, nil
}

// ListByUser lets the client serve order history
func (c *Client) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return c.GetOrdersByUser(ctx, userID)
}
