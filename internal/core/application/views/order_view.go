// Package views assembles read models returned to API callers and pushed to
// order subscribers. The assembly is a pure post-fetch join: stored orders
// carry only menu item identifiers, and the current catalog details are
// resolved here at display time.
package views

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MenuItemView is the resolved catalog detail attached to an order line.
type MenuItemView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Available   bool            `json:"available"`
}

// OrderItemView is one order line with its display-time catalog detail.
// MenuItem is nil when the referenced item no longer exists in the catalog;
// the order itself still renders.
type OrderItemView struct {
	MenuItemID string          `json:"menuItemId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	MenuItem   *MenuItemView   `json:"menuItem"`
}

// CustomerView is the delivery contact block of an order.
type CustomerView struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// StatusChangeView is one entry of the status history.
type StatusChangeView struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderView is the full order representation returned by every engine
// operation and delivered to subscribers. Field names follow the persisted
// document contract of the storefront.
type OrderView struct {
	ID            string             `json:"id"`
	Items         []OrderItemView    `json:"items"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	Customer      CustomerView       `json:"customer"`
	Status        string             `json:"status"`
	StatusHistory []StatusChangeView `json:"statusHistory"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Assembler builds OrderViews from order aggregates, joining in menu item
// details through the catalog collaborator.
type Assembler struct {
	catalog ports.MenuCatalog
}

// NewAssembler creates an Assembler backed by the given catalog.
func NewAssembler(catalog ports.MenuCatalog) Assembler {
	return Assembler{catalog: catalog}
}

// Assemble converts an order aggregate into its view, resolving every
// referenced menu item. A missing catalog item degrades to a nil MenuItem;
// any other catalog failure is returned so the caller can retry the read.
func (a Assembler) Assemble(ctx context.Context, o *order.Order) (OrderView, error) {
	if err := o.Validate(); err != nil {
		return OrderView{}, err
	}

	items := o.Items()
	itemViews := make([]OrderItemView, 0, len(items))
	resolved := make(map[kernel.UUID]*MenuItemView, len(items))

	for _, item := range items {
		detail, ok := resolved[item.MenuItemID()]
		if !ok {
			var err error
			detail, err = a.resolve(ctx, item.MenuItemID())
			if err != nil {
				return OrderView{}, err
			}
			resolved[item.MenuItemID()] = detail
		}

		itemViews = append(itemViews, OrderItemView{
			MenuItemID: item.MenuItemID().String(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			MenuItem:   detail,
		})
	}

	history := o.StatusHistory()
	historyViews := make([]StatusChangeView, 0, len(history))
	for _, change := range history {
		historyViews = append(historyViews, StatusChangeView{
			Status:    change.Status().String(),
			Timestamp: change.Timestamp(),
		})
	}

	return OrderView{
		ID:          o.ID().String(),
		Items:       itemViews,
		TotalAmount: o.TotalAmount(),
		Customer: CustomerView{
			Name:    o.Customer().Name(),
			Address: o.Customer().Address(),
			Phone:   o.Customer().Phone(),
		},
		Status:        o.Status().String(),
		StatusHistory: historyViews,
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}, nil
}

func (a Assembler) resolve(ctx context.Context, id kernel.UUID) (*MenuItemView, error) {
	menuItem, err := a.catalog.ResolveMenuItem(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &MenuItemView{
		ID:          menuItem.ID.String(),
		Name:        menuItem.Name,
		Description: menuItem.Description,
		Price:       menuItem.Price,
		Image:       menuItem.ImageURL,
		Category:    menuItem.Category,
		Available:   menuItem.Available,
	}, nil
}
