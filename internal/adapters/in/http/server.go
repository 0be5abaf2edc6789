package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/notifications"
	"orderdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler      commands.PlaceOrderCommandHandler
	setOrderStatusHandler  commands.SetOrderStatusCommandHandler
	advanceProgressHandler commands.AdvanceOrderProgressCommandHandler
	deleteOrderHandler     commands.DeleteOrderCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	hub    *notifications.Hub
	logger *slog.Logger
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	setOrderStatusHandler commands.SetOrderStatusCommandHandler,
	advanceProgressHandler commands.AdvanceOrderProgressCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	hub *notifications.Hub,
	logger *slog.Logger,
) *Server {
	return &Server{
		placeOrderHandler:      placeOrderHandler,
		setOrderStatusHandler:  setOrderStatusHandler,
		advanceProgressHandler: advanceProgressHandler,
		deleteOrderHandler:     deleteOrderHandler,
		getOrderHandler:        getOrderHandler,
		listOrdersHandler:      listOrdersHandler,
		hub:                    hub,
		logger:                 logger.With("component", "http"),
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", s.Health)

	orders := api.Group("/orders")
	orders.POST("", s.PlaceOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/:id", s.GetOrder)
	orders.PUT("/:id/status", s.UpdateOrderStatus)
	orders.POST("/:id/simulate", s.SimulateOrderProgress)
	orders.DELETE("/:id", s.DeleteOrder)
	orders.GET("/:id/stream", s.StreamOrder)
}

// Health handles GET /api/health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// PlaceOrder handles POST /api/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]order.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		menuItemID, err := kernel.UUIDFromString(itemReq.MenuItemID)
		if err != nil {
			return badRequest(ctx, "Invalid menu item id: "+itemReq.MenuItemID)
		}

		item, err := order.NewOrderItem(menuItemID, itemReq.Quantity, itemReq.UnitPrice)
		if err != nil {
			return s.mapError(ctx, err)
		}
		items = append(items, item)
	}

	customer, err := order.NewCustomer(req.Customer.Name, req.Customer.Address, req.Customer.Phone)
	if err != nil {
		return s.mapError(ctx, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(items, req.TotalAmount, customer)
	if err != nil {
		return s.mapError(ctx, err)
	}

	view, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, view)
}

// ListOrders handles GET /api/orders - retrieves all orders, newest first.
func (s *Server) ListOrders(ctx echo.Context) error {
	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListOrdersQuery())
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetOrder handles GET /api/orders/:id - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// UpdateOrderStatus handles PUT /api/orders/:id/status - moves an order to
// the requested status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.Status)
	}

	cmd, err := commands.NewSetOrderStatusCommand(orderID, target)
	if err != nil {
		return s.mapError(ctx, err)
	}

	view, err := s.setOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// SimulateOrderProgress handles POST /api/orders/:id/simulate - advances an
// order one step along the canonical progression.
func (s *Server) SimulateOrderProgress(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAdvanceOrderProgressCommand(orderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	result, err := s.advanceProgressHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	message := "Order progress updated"
	if !result.Advanced {
		message = "Order already delivered"
	}

	return ctx.JSON(http.StatusOK, SimulateResponse{
		Message:       message,
		CurrentStatus: result.Order.Status,
	})
}

// DeleteOrder handles DELETE /api/orders/:id - removes an order permanently.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StreamOrder handles GET /api/orders/:id/stream - a server-sent event
// stream of the order's updates. The current state is sent as the first
// event; afterwards every committed change of this order produces one event.
func (s *Server) StreamOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	// Subscribe before the snapshot read so no update committed in between
	// is missed. A duplicate of the snapshot is possible and harmless.
	sub := s.hub.Subscribe(orderID)
	defer sub.Unsubscribe()

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	if err = writeOrderEvent(resp, snapshot); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil
		case view, ok := <-sub.Updates():
			if !ok {
				return nil
			}
			if err = writeOrderEvent(resp, view); err != nil {
				return err
			}
		}
	}
}

func writeOrderEvent(resp *echo.Response, view views.OrderView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(resp, "event: order-update\ndata: %s\n\n", data); err != nil {
		return err
	}

	resp.Flush()
	return nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates application errors to HTTP status codes: rejected
// input maps to 400, unknown ids to 404, transient storage failures to 503,
// everything else to 500.
func (s *Server) mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, errs.ErrStoreUnavailable):
		return ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Code:    http.StatusServiceUnavailable,
			Message: "Storage temporarily unavailable, retry the request",
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		s.logger.Error("request failed", "path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
