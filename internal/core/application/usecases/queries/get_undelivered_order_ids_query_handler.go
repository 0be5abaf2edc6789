package queries

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUndeliveredOrderIDsQueryHandler reads pending order ids straight from
// the database, bypassing aggregate hydration.
type GetUndeliveredOrderIDsQueryHandler struct {
	db *gorm.DB
}

// NewGetUndeliveredOrderIDsQueryHandler creates a handler for pending order id queries.
func NewGetUndeliveredOrderIDsQueryHandler(db *gorm.DB) GetUndeliveredOrderIDsQueryHandler {
	return GetUndeliveredOrderIDsQueryHandler{db: db}
}

// Handle returns the ids of all orders whose status is not Delivered, sorted
// by id for consistent output.
func (h GetUndeliveredOrderIDsQueryHandler) Handle(
	ctx context.Context,
	query GetUndeliveredOrderIDsQuery,
) ([]GetUndeliveredOrderIDsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetUndeliveredOrderIDsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id
		FROM orders
		WHERE status != ?
		ORDER BY id
	`, order.Delivered.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID

		if err = rows.Scan(&id); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		pending = append(pending, GetUndeliveredOrderIDsQueryResponse{ID: orderID})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
