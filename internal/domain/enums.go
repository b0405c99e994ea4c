package domain

// OrderStatus represents the backend status of a placed order
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced,
		OrderStatusShipped,
		OrderStatusFulfilled,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPlaced:
		return newStatus == OrderStatusShipped ||
			newStatus == OrderStatusFulfilled ||
			newStatus == OrderStatusCancelled
	case OrderStatusShipped:
		return newStatus == OrderStatusFulfilled
	case OrderStatusFulfilled, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}

// Display returns the label shown in order history
func (s OrderStatus) Display() string {
	switch s {
	case OrderStatusPlaced:
		return "Processing"
	case OrderStatusShipped:
		return "In Transit"
	case OrderStatusFulfilled:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}
