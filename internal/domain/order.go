package domain

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// orderEdges declares the permitted status transitions. Cancellation is only
// possible before shipment; refunds only after delivery. Cancelled and
// refunded are terminal.
var orderEdges = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {OrderRefunded},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderEdges[s] {
		if t == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID        string      `db:"id" json:"id"`
	AccountID string      `db:"account_id" json:"accountId"`
	Total     float64     `db:"total" json:"total"`
	Status    OrderStatus `db:"status" json:"status"`
	CreatedAt string      `db:"created_at" json:"createdAt"`
	UpdatedAt string      `db:"updated_at" json:"updatedAt,omitempty"`
}

type OrderItem struct {
	OrderID   string  `db:"order_id" json:"-"`
	ProductID string  `db:"product_id" json:"productId"`
	Qty       int     `db:"qty" json:"qty"`
	Price     float64 `db:"price" json:"price"`
}
