package orderrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Select("*") forces nullable
// columns to be written even when they transition back to NULL, which happens
// when a cancellation releases the courier.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Map("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order by ID and locks its row until the
// surrounding transaction ends. Concurrent mutators of the same order queue
// behind the lock and observe committed state once they acquire it.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto OrderDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Map("get order", err)
	}

	return toDomain(dto)
}

// GetDeliveredBefore retrieves delivered orders whose delivery happened
// before the cutoff. Used by the completion job.
func (r *GormOrderRepository) GetDeliveredBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND delivered_at < ?", int(order.Delivered), cutoff).Error
	if err != nil {
		return nil, pgerr.Map("get delivered orders", err)
	}

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

// DeleteDelivered removes finished orders matching the filter. Only rows in
// delivered or completed status are touched; assignment log entries and
// ratings stay.
func (r *GormOrderRepository) DeleteDelivered(ctx context.Context, filter ports.DeliveredFilter) (int64, error) {
	tx := r.db.WithContext(ctx).Where("status IN ?", []int{int(order.Delivered), int(order.Completed)})

	if !filter.DateFrom.IsZero() {
		tx = tx.Where("delivered_at >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		tx = tx.Where("delivered_at <= ?", filter.DateTo)
	}
	if filter.OlderThan > 0 {
		tx = tx.Where("delivered_at < ?", time.Now().UTC().Add(-filter.OlderThan))
	}

	result := tx.Delete(&OrderDTO{})
	if result.Error != nil {
		return 0, pgerr.Map("purge delivered orders", result.Error)
	}

	return result.RowsAffected, nil
}

// LogAssignment appends a pairing to the assignment log. The conflict clause
// makes recording the same order-courier pairing twice a no-op, so a retried
// assignment does not inflate the courier's totals.
func (r *GormOrderRepository) LogAssignment(ctx context.Context, record order.AssignmentRecord) error {
	if err := record.OrderID.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(record)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return pgerr.Map("log assignment", err)
	}

	return nil
}
