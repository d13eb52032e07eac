package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Repository implements ports.OrderRepository on SQLite.
type Repository struct {
	q querier
}

// NewRepository creates a repository that runs outside of any transaction.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{q: db}
}

const selectOrders = `
	SELECT o.id, o.total, o.order_source, o.location_id, o.customer_loyalty_id,
	       o.order_placed_at, o.order_completed_at,
	       li.item, li.price, li.prepared_by
	FROM orders o
	LEFT JOIN line_items li ON li.order_id = o.id
`

const orderBy = ` ORDER BY o.order_placed_at, o.id, li.position`

// Add inserts the order row and one row per line item. Outside a transaction the
// statements are not atomic; the record path always runs inside a UnitOfWork.
func (r *Repository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	placedAt, err := encodeInstant("orderPlacedTimestamp", aggregate.OrderPlacedTimestamp())
	if err != nil {
		return err
	}
	completedAt, err := encodeInstant("orderCompletedTimestamp", aggregate.OrderCompletedTimestamp())
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO orders (id, total, order_source, location_id, customer_loyalty_id,
		                    order_placed_at, order_completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		aggregate.ID(),
		aggregate.Total().String(),
		aggregate.OrderSource().String(),
		aggregate.LocationID().String(),
		aggregate.CustomerLoyaltyID(),
		placedAt,
		completedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("order", aggregate.ID(), err)
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i, item := range aggregate.LineItems() {
		if _, err := r.q.ExecContext(ctx, `
			INSERT INTO line_items (order_id, position, item, price, prepared_by)
			VALUES (?, ?, ?, ?, ?)`,
			aggregate.ID(), i, item.Item(), item.Price().String(), item.PreparedBy(),
		); err != nil {
			return fmt.Errorf("failed to insert line item %d: %w", i, err)
		}
	}

	return nil
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (*order.Order, error) {
	orders, err := r.query(ctx, selectOrders+` WHERE o.id = ?`+orderBy, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return orders[0], nil
}

// FindBetween retrieves all orders placed within [start, end].
func (r *Repository) FindBetween(ctx context.Context, start, end time.Time) ([]*order.Order, error) {
	return r.query(ctx,
		selectOrders+` WHERE o.order_placed_at BETWEEN ? AND ?`+orderBy,
		encodeBound(start), encodeBound(end),
	)
}

// FindBetweenForLocation retrieves all orders placed within [start, end] at location.
func (r *Repository) FindBetweenForLocation(
	ctx context.Context,
	location order.StoreLocation,
	start, end time.Time,
) ([]*order.Order, error) {
	return r.query(ctx,
		selectOrders+` WHERE o.location_id = ? AND o.order_placed_at BETWEEN ? AND ?`+orderBy,
		location.String(), encodeBound(start), encodeBound(end),
	)
}

// orderRow accumulates the joined rows of one order.
type orderRow struct {
	id                string
	total             string
	orderSource       string
	locationID        string
	customerLoyaltyID sql.NullString
	placedAt          string
	completedAt       string
	lineItems         []*order.LineItem
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var collected []*orderRow
	for rows.Next() {
		var row orderRow
		var item, price, preparedBy sql.NullString

		if err := rows.Scan(
			&row.id, &row.total, &row.orderSource, &row.locationID, &row.customerLoyaltyID,
			&row.placedAt, &row.completedAt,
			&item, &price, &preparedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		current := &row
		if n := len(collected); n > 0 && collected[n-1].id == row.id {
			current = collected[n-1]
		} else {
			collected = append(collected, current)
		}

		if item.Valid {
			p, err := decimal.NewFromString(price.String)
			if err != nil {
				return nil, fmt.Errorf("order %s has a malformed price: %w", row.id, err)
			}
			current.lineItems = append(current.lineItems, order.NewLineItem(item.String, p, preparedBy.String, nil))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(collected))
	for _, row := range collected {
		o, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (row *orderRow) toDomain() (*order.Order, error) {
	total, err := decimal.NewFromString(row.total)
	if err != nil {
		return nil, fmt.Errorf("order %s has a malformed total: %w", row.id, err)
	}

	source, err := order.ParseOrderSource(row.orderSource)
	if err != nil {
		return nil, err
	}

	location, err := order.ParseStoreLocation(row.locationID)
	if err != nil {
		return nil, err
	}

	placedAt, err := decodeInstant(row.placedAt)
	if err != nil {
		return nil, fmt.Errorf("order %s has a malformed placed timestamp: %w", row.id, err)
	}
	completedAt, err := decodeInstant(row.completedAt)
	if err != nil {
		return nil, fmt.Errorf("order %s has a malformed completed timestamp: %w", row.id, err)
	}

	var loyaltyID *string
	if row.customerLoyaltyID.Valid {
		loyaltyID = &row.customerLoyaltyID.String
	}

	lineItems := row.lineItems
	if lineItems == nil {
		lineItems = []*order.LineItem{}
	}

	return order.RestoreOrder(
		row.id,
		lineItems,
		total,
		source,
		location,
		loyaltyID,
		placedAt,
		completedAt,
	)
}
