package models

// UpdateOrderStatusRequest is the body of PUT /updateOrderStatus.
// Status is free-form; any non-empty value is accepted.
type UpdateOrderStatusRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatusResponse reports whether an existing order was updated.
type UpdateOrderStatusResponse struct {
	Updated bool `json:"updated"`
}
