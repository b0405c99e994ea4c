package service

import (
	"context"

	"github.com/inkhouse/storefront/internal/checkout"
	"github.com/inkhouse/storefront/internal/money"
)

// LocalSubmitter places checkout orders against this process's repositories
type LocalSubmitter struct {
	orders *orderService
	stock  *stockService
}

// NewLocalSubmitter creates a submitter over the order and stock services
func NewLocalSubmitter(orders *orderService, stock *stockService) *LocalSubmitter {
	return &LocalSubmitter{orders: orders, stock: stock}
}

func (l *LocalSubmitter) SubmitOrder(ctx context.Context, req checkout.OrderRequest) (*checkout.Confirmation, error) {
	if err := l.stock.CheckAvailability(ctx, req.Items); err != nil {
		return nil, err
	}

	order, err := l.orders.CreateOrder(ctx, req)
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
