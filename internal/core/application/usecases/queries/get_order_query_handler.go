package queries

import (
	"context"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/ports"
)

// GetOrderQueryHandler loads a single order through the repository.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetOrderQueryHandler(repo ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{repo: repo}
}

// Handle returns the order or an errs.ObjectNotFoundError when it does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.repo.Get(ctx, query.OrderID())
}
