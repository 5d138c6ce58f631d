package domain

// Dish is a menu entry. All fields are set at creation and stay valid for
// the lifetime of the record; Price is in currency minor units.
type Dish struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	ImageURL    string `json:"image_url"`
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out-for-delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// OrderItem is one line of an order.
type OrderItem struct {
	DishID   string `json:"dishId"`
	Quantity int    `json:"quantity"`
}

// Order is a delivery order. Once Status reaches delivered the record is
// immutable; deletion is allowed only while Status is pending.
type Order struct {
	ID           string      `json:"id"`
	DeliverTo    string      `json:"deliverTo"`
	MobileNumber string      `json:"mobileNumber"`
	Status       OrderStatus `json:"status"`
	Dishes       []OrderItem `json:"dishes"`
}
