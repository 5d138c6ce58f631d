package domain

// DishPayload is a client-supplied dish body, before validation. Price is a
// float64 so a fractional JSON number reaches the integer rule instead of
// failing to decode.
type DishPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

// OrderItemPayload is one client-supplied order line.
type OrderItemPayload struct {
	DishID   string  `json:"dishId"`
	Quantity float64 `json:"quantity"`
}

// OrderPayload is a client-supplied order body, before validation.
type OrderPayload struct {
	ID           string             `json:"id"`
	DeliverTo    string             `json:"deliverTo"`
	MobileNumber string             `json:"mobileNumber"`
	Status       string             `json:"status"`
	Dishes       []OrderItemPayload `json:"dishes"`
}
