package rediscache

import (
	"encoding/json"
	"time"

	"homeoffice/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type lineItemSnapshot struct {
	Item       string          `json:"item"`
	Price      decimal.Decimal `json:"price"`
	PreparedBy string          `json:"preparedBy,omitempty"`
}

type orderSnapshot struct {
	ID                      string             `json:"id"`
	LineItems               []lineItemSnapshot `json:"lineItems"`
	Total                   decimal.Decimal    `json:"total"`
	OrderSource             string             `json:"orderSource"`
	LocationID              string             `json:"locationId"`
	CustomerLoyaltyID       *string            `json:"customerLoyaltyId,omitempty"`
	OrderPlacedTimestamp    time.Time          `json:"orderPlacedTimestamp"`
	OrderCompletedTimestamp time.Time          `json:"orderCompletedTimestamp"`
}

func toSnapshot(o *order.Order) orderSnapshot {
	items := make([]lineItemSnapshot, 0, len(o.LineItems()))
	for _, item := range o.LineItems() {
		items = append(items, lineItemSnapshot{Item: item.Item(), Price: item.Price(), PreparedBy: item.PreparedBy()})
	}

	return orderSnapshot{
		ID:                      o.ID(),
		LineItems:               items,
		Total:                   o.Total(),
		OrderSource:             o.OrderSource().String(),
		LocationID:              o.LocationID().String(),
		CustomerLoyaltyID:       o.CustomerLoyaltyID(),
		OrderPlacedTimestamp:    o.OrderPlacedTimestamp(),
		OrderCompletedTimestamp: o.OrderCompletedTimestamp(),
	}
}

func (s orderSnapshot) toDomain() (*order.Order, error) {
	source, err := order.ParseOrderSource(s.OrderSource)
	if err != nil {
		return nil, err
	}

	location, err := order.ParseStoreLocation(s.LocationID)
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(s.LineItems))
	for _, item := range s.LineItems {
		items = append(items, order.NewLineItem(item.Item, item.Price, item.PreparedBy, nil))
	}

	return order.RestoreOrder(
		s.ID, items, s.Total, source, location, s.CustomerLoyaltyID,
		s.OrderPlacedTimestamp, s.OrderCompletedTimestamp,
	)
}

func encodeOrders(orders []*order.Order) (string, error) {
	snapshots := make([]orderSnapshot, 0, len(orders))
	for _, o := range orders {
		snapshots = append(snapshots, toSnapshot(o))
	}

	raw, err := json.Marshal(snapshots)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeOrders(raw string) ([]*order.Order, error) {
	var snapshots []orderSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshots); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(snapshots))
	for _, s := range snapshots {
		o, err := s.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
