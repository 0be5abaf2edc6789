// Package menucatalog reads menu item details from the menu_items table.
// The catalog is display enrichment only: orders reference menu items by id
// and the current details are joined in at read time.
package menucatalog

import (
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItemDTO is the database representation of a catalog entry.
type MenuItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"not null"`
	Description string
	Price       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Image       string
	Category    string `gorm:"index"`
	Available   bool
}

// TableName overrides GORM's default naming to use "menu_items".
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func toMenuItem(dto MenuItemDTO) (*ports.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.MenuItem{
		ID:          id,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		ImageURL:    dto.Image,
		Category:    dto.Category,
		Available:   dto.Available,
	}, nil
}
