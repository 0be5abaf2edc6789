package queries

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrGetUndeliveredOrderIDsQueryIsNotConstructed = errors.New(
		"GetUndeliveredOrderIDsQuery must be created via NewGetUndeliveredOrderIDsQuery constructor",
	)
)

// GetUndeliveredOrderIDsQuery retrieves the ids of all orders that have not
// reached Delivered yet. The progress simulation job uses it to pick its
// candidates without loading full aggregates.
type GetUndeliveredOrderIDsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUndeliveredOrderIDsQuery creates a parameterless query for pending order ids.
func NewGetUndeliveredOrderIDsQuery() GetUndeliveredOrderIDsQuery {
	return GetUndeliveredOrderIDsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUndeliveredOrderIDsQuery) Validate() error {
	return q.guard.Validate(ErrGetUndeliveredOrderIDsQueryIsNotConstructed)
}

// GetUndeliveredOrderIDsQueryResponse is one pending order id.
type GetUndeliveredOrderIDsQueryResponse struct {
	ID kernel.UUID
}
