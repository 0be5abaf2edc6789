package queries

import (
	"context"

	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/ports"
)

// ListOrdersQueryHandler retrieves all orders and assembles their views.
type ListOrdersQueryHandler struct {
	repo      ports.OrderRepository
	assembler views.Assembler
}

// NewListOrdersQueryHandler creates a handler for the order listing.
func NewListOrdersQueryHandler(repo ports.OrderRepository, assembler views.Assembler) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{repo: repo, assembler: assembler}
}

// Handle returns all orders sorted by creation time, newest first. An empty
// store yields an empty slice, not nil.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]views.OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]views.OrderView, 0, len(orders))
	for _, o := range orders {
		view, assembleErr := h.assembler.Assemble(ctx, o)
		if assembleErr != nil {
			return nil, assembleErr
		}
		result = append(result, view)
	}

	return result, nil
}
