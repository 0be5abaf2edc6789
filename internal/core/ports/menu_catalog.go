package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// MenuItem is the catalog detail joined onto order lines at display time.
// Orders store only menu item identifiers; the catalog owns the rest, so a
// renamed or repriced dish shows up immediately without touching stored
// orders.
type MenuItem struct {
	ID          kernel.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Available   bool
}

// MenuCatalog resolves menu item identifiers to their current catalog
// details. It is an external collaborator used only for display enrichment,
// never for validating order totals.
type MenuCatalog interface {
	// ResolveMenuItem returns the catalog detail for the given id, or an
	// errs.ObjectNotFoundError when the item no longer exists.
	ResolveMenuItem(ctx context.Context, id kernel.UUID) (*MenuItem, error)
}
