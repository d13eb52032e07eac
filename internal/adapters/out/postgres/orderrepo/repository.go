package orderrepo

import (
	"context"
	"errors"
	"time"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
// PostgreSQL stores timestamps with microsecond precision, so sub-microsecond parts of
// the placed and completed instants are truncated on write.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isDuplicateKey(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("order", aggregate.ID(), err)
		}
		return err
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.withLineItems(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindBetween retrieves all orders placed within [start, end].
func (r *GormOrderRepository) FindBetween(ctx context.Context, start, end time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withLineItems(ctx).
		Where("order_placed_timestamp BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Order("order_placed_timestamp, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// FindBetweenForLocation retrieves all orders placed within [start, end] at location.
func (r *GormOrderRepository) FindBetweenForLocation(
	ctx context.Context,
	location order.StoreLocation,
	start, end time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withLineItems(ctx).
		Where("location_id = ? AND order_placed_timestamp BETWEEN ? AND ?", location.String(), start.UTC(), end.UTC()).
		Order("order_placed_timestamp, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func (r *GormOrderRepository) withLineItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
