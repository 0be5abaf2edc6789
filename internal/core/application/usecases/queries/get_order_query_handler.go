package queries

import (
	"context"

	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/ports"
)

// GetOrderQueryHandler retrieves one order and assembles its view. Menu item
// details reflect the catalog at read time, not at placement time.
type GetOrderQueryHandler struct {
	repo      ports.OrderRepository
	assembler views.Assembler
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(repo ports.OrderRepository, assembler views.Assembler) GetOrderQueryHandler {
	return GetOrderQueryHandler{repo: repo, assembler: assembler}
}

// Handle returns the order view, or a not-found error for unknown ids.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (views.OrderView, error) {
	if err := query.Validate(); err != nil {
		return views.OrderView{}, err
	}

	o, err := h.repo.Get(ctx, query.OrderID())
	if err != nil {
		return views.OrderView{}, err
	}

	return h.assembler.Assemble(ctx, o)
}
