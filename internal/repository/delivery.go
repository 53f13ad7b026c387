package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-lastmile/internal/apperr"
	"service-lastmile/internal/domain"
	"service-lastmile/internal/ports/deliverytx"
)

const deliveryColumns = `
    id, order_id, hub_id, agent_id, agent_name, status,
    delivery_address, recipient_name, recipient_contact, expected_time,
    started_at, departed_at, delivered_at, created_at, updated_at,
    is_deleted, deleted_at, deleted_by`

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// отменяем в случае паники
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				panic(rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Get returns the delivery by id without locking, or nil.
func (r *DeliveryRepo) Get(ctx context.Context, id string) (*domain.Delivery, error) {
	return getDelivery(ctx, r.db, `WHERE id = $1`, id)
}

// GetByOrderID returns the delivery of the order without locking, or nil.
func (r *DeliveryRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error) {
	return getDelivery(ctx, r.db, `WHERE order_id = $1`, orderID)
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// Get loads the delivery by id and locks its row.
func (r *TxRepo) Get(ctx context.Context, id string) (*domain.Delivery, error) {
	return getDelivery(ctx, r.tx, `WHERE id = $1 FOR UPDATE`, id)
}

// GetByOrderID loads the delivery of the order and locks its row.
func (r *TxRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error) {
	return getDelivery(ctx, r.tx, `WHERE order_id = $1 FOR UPDATE`, orderID)
}

// Save inserts the delivery or updates its mutable columns.
func (r *TxRepo) Save(ctx context.Context, d *domain.Delivery) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO final_mile_delivery (`+deliveryColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        ON CONFLICT (id) DO UPDATE SET
            agent_id     = EXCLUDED.agent_id,
            agent_name   = EXCLUDED.agent_name,
            status       = EXCLUDED.status,
            started_at   = EXCLUDED.started_at,
            departed_at  = EXCLUDED.departed_at,
            delivered_at = EXCLUDED.delivered_at,
            updated_at   = EXCLUDED.updated_at,
            is_deleted   = EXCLUDED.is_deleted,
            deleted_at   = EXCLUDED.deleted_at,
            deleted_by   = EXCLUDED.deleted_by
    `,
		d.ID, d.OrderID, d.HubID, nullable(d.AgentID), nullable(d.AgentName), string(d.Status),
		d.DeliveryAddress, d.RecipientName, d.RecipientContact, d.ExpectedTime,
		d.StartedAt, d.DepartedAt, d.DeliveredAt, d.CreatedAt, d.UpdatedAt,
		d.IsDeleted, d.DeletedAt, nullable(d.DeletedBy),
	)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("save delivery for order %q: %w", d.OrderID, apperr.ErrAlreadyExists)
		}
		return fmt.Errorf("save delivery %s: %w", d.ID, err)
	}
	return nil
}

func getDelivery(ctx context.Context, q querier, where string, arg string) (*domain.Delivery, error) {
	row := q.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM final_mile_delivery `+where, arg)

	var (
		d                             domain.Delivery
		agentID, agentName, deletedBy *string
		status                        string
	)
	err := row.Scan(
		&d.ID, &d.OrderID, &d.HubID, &agentID, &agentName, &status,
		&d.DeliveryAddress, &d.RecipientName, &d.RecipientContact, &d.ExpectedTime,
		&d.StartedAt, &d.DepartedAt, &d.DeliveredAt, &d.CreatedAt, &d.UpdatedAt,
		&d.IsDeleted, &d.DeletedAt, &deletedBy,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %q: %w", arg, err)
	}

	d.Status = domain.Status(status)
	d.AgentID = deref(agentID)
	d.AgentName = deref(agentName)
	d.DeletedBy = deref(deletedBy)
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	for _, ts := range []**time.Time{&d.ExpectedTime, &d.StartedAt, &d.DepartedAt, &d.DeliveredAt, &d.DeletedAt} {
		if *ts != nil {
			utc := (*ts).UTC()
			*ts = &utc
		}
	}
	return &d, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
