// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"homeoffice/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Enumerations are stored by name. The composite index serves location-scoped range
// queries; the single-column one serves unscoped range queries.
type OrderDTO struct {
	ID                      string          `gorm:"type:varchar(64);primaryKey"`
	Total                   decimal.Decimal `gorm:"type:numeric;not null"`
	OrderSource             string          `gorm:"type:varchar(16);not null"`
	LocationID              string          `gorm:"type:varchar(16);not null;index:idx_orders_location_placed,priority:1"`
	CustomerLoyaltyID       *string         `gorm:"type:varchar(64)"`
	OrderPlacedTimestamp    time.Time       `gorm:"type:timestamptz;not null;index:idx_orders_placed;index:idx_orders_location_placed,priority:2"` //nolint:lll
	OrderCompletedTimestamp time.Time       `gorm:"type:timestamptz;not null"`
	LineItems               []LineItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one purchased item. Position keeps the aggregate's insertion order.
type LineItemDTO struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement"`
	OrderID    string          `gorm:"type:varchar(64);not null;index"`
	Position   int             `gorm:"not null"`
	Item       string          `gorm:"type:varchar(255);not null"`
	Price      decimal.Decimal `gorm:"type:numeric;not null"`
	PreparedBy string          `gorm:"type:varchar(255);not null;default:''"`
}

// TableName specifies the database table name for line items.
func (LineItemDTO) TableName() string {
	return "line_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.LineItems()
	lineItems := make([]LineItemDTO, 0, len(items))
	for i, item := range items {
		lineItems = append(lineItems, LineItemDTO{
			OrderID:    aggregate.ID(),
			Position:   i,
			Item:       item.Item(),
			Price:      item.Price(),
			PreparedBy: item.PreparedBy(),
		})
	}

	return OrderDTO{
		ID:                      aggregate.ID(),
		Total:                   aggregate.Total(),
		OrderSource:             aggregate.OrderSource().String(),
		LocationID:              aggregate.LocationID().String(),
		CustomerLoyaltyID:       aggregate.CustomerLoyaltyID(),
		OrderPlacedTimestamp:    aggregate.OrderPlacedTimestamp(),
		OrderCompletedTimestamp: aggregate.OrderCompletedTimestamp(),
		LineItems:               lineItems,
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder, so the
// persisted total is kept as stored. Line items must already be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	source, err := order.ParseOrderSource(dto.OrderSource)
	if err != nil {
		return nil, err
	}

	location, err := order.ParseStoreLocation(dto.LocationID)
	if err != nil {
		return nil, err
	}

	lineItems := make([]*order.LineItem, 0, len(dto.LineItems))
	for _, item := range dto.LineItems {
		lineItems = append(lineItems, order.NewLineItem(item.Item, item.Price, item.PreparedBy, nil))
	}

	return order.RestoreOrder(
		dto.ID,
		lineItems,
		dto.Total,
		source,
		location,
		dto.CustomerLoyaltyID,
		dto.OrderPlacedTimestamp,
		dto.OrderCompletedTimestamp,
	)
}
