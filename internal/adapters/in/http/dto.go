// Package http exposes the order lifecycle engine over REST and server-sent
// events using echo.
package http

import (
	"github.com/shopspring/decimal"
)

// PlaceOrderItemRequest is one order line of a placement request.
type PlaceOrderItemRequest struct {
	MenuItemID string          `json:"menuItemId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

// CustomerRequest is the delivery contact block of a placement request.
type CustomerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// PlaceOrderRequest is the body of POST /api/orders. The total is taken as
// sent; the storefront checkout computes it and this service is not the
// pricing authority.
type PlaceOrderRequest struct {
	Items       []PlaceOrderItemRequest `json:"items"`
	TotalAmount decimal.Decimal         `json:"totalAmount"`
	Customer    CustomerRequest         `json:"customer"`
}

// UpdateStatusRequest is the body of PUT /api/orders/:id/status. The status
// is the display string, e.g. "Out for Delivery".
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// SimulateResponse is the body returned by POST /api/orders/:id/simulate.
type SimulateResponse struct {
	Message       string `json:"message"`
	CurrentStatus string `json:"currentStatus"`
}

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
