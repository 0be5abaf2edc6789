// Package orderrepo persists order aggregates in PostgreSQL. Order lines and
// the status history are stored as JSONB documents inside the orders row, so
// an aggregate maps to exactly one row and row-level locking serializes all
// mutations of one order.
package orderrepo

import (
	"encoding/json"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the database representation of an order aggregate.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Items         datatypes.JSON  `gorm:"type:jsonb"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2)"`
	Customer      CustomerDTO     `gorm:"embedded;embeddedPrefix:customer_"`
	Status        string          `gorm:"index"`
	StatusHistory datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO is the embedded delivery contact block of the orders row.
type CustomerDTO struct {
	Name    string
	Address string
	Phone   string
}

// orderItemDoc is one order line inside the items JSONB document.
type orderItemDoc struct {
	MenuItemID string          `json:"menuItemId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

// statusChangeDoc is one entry of the statusHistory JSONB document.
type statusChangeDoc struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := aggregate.Items()
	itemDocs := make([]orderItemDoc, 0, len(items))
	for _, item := range items {
		itemDocs = append(itemDocs, orderItemDoc{
			MenuItemID: item.MenuItemID().String(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}

	rawItems, err := json.Marshal(itemDocs)
	if err != nil {
		return OrderDTO{}, err
	}

	history := aggregate.StatusHistory()
	historyDocs := make([]statusChangeDoc, 0, len(history))
	for _, change := range history {
		historyDocs = append(historyDocs, statusChangeDoc{
			Status:    change.Status().String(),
			Timestamp: change.Timestamp(),
		})
	}

	rawHistory, err := json.Marshal(historyDocs)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		Items:       datatypes.JSON(rawItems),
		TotalAmount: aggregate.TotalAmount(),
		Customer: CustomerDTO{
			Name:    aggregate.Customer().Name(),
			Address: aggregate.Customer().Address(),
			Phone:   aggregate.Customer().Phone(),
		},
		Status:        aggregate.Status().String(),
		StatusHistory: datatypes.JSON(rawHistory),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}, nil
}

// toDomain reconstructs an order aggregate from its database representation.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var itemDocs []orderItemDoc
	if err = json.Unmarshal(dto.Items, &itemDocs); err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, 0, len(itemDocs))
	for _, doc := range itemDocs {
		menuItemID, idErr := kernel.UUIDFromString(doc.MenuItemID)
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := order.NewOrderItem(menuItemID, doc.Quantity, doc.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	customer, err := order.NewCustomer(dto.Customer.Name, dto.Customer.Address, dto.Customer.Phone)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var historyDocs []statusChangeDoc
	if err = json.Unmarshal(dto.StatusHistory, &historyDocs); err != nil {
		return nil, err
	}

	history := make([]order.StatusChange, 0, len(historyDocs))
	for _, doc := range historyDocs {
		entryStatus, statusErr := order.ParseStatus(doc.Status)
		if statusErr != nil {
			return nil, statusErr
		}

		change, changeErr := order.NewStatusChange(entryStatus, doc.Timestamp)
		if changeErr != nil {
			return nil, changeErr
		}
		history = append(history, change)
	}

	return order.RestoreOrder(id, items, dto.TotalAmount, customer, status, history, dto.CreatedAt, dto.UpdatedAt)
}
