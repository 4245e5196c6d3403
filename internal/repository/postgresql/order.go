package postgresql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v4"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/storage"
)

const orderColumns = `id, customer_id, customer_name, items, subtotal, delivery_fee, total,
            payment_method, delivery_address, phone, customer_note, status, stage,
            estimated_time, hold_minutes, is_on_hold, queue_position, assigned_to, admin_notes,
            created_at, updated_at`

// Columns a staff patch may write. Everything else is fixed at placement.
var mutableColumns = map[string]struct{}{
	"status":         {},
	"stage":          {},
	"estimated_time": {},
	"hold_minutes":   {},
	"is_on_hold":     {},
	"queue_position": {},
	"assigned_to":    {},
	"admin_notes":    {},
	"updated_at":     {},
}

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) storage.OrderRepository {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO orders (`+orderColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
    `, order.ID, order.CustomerID, order.CustomerName, order.Items, order.Subtotal, order.DeliveryFee, order.Total,
		order.PaymentMethod, order.DeliveryAddress, order.Phone, order.CustomerNote, order.Status, order.Stage,
		order.EstimatedTime, order.HoldMinutes, order.IsOnHold, order.QueuePosition, order.AssignedTo, order.AdminNotes,
		order.CreatedAt, order.UpdatedAt)
	return err
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error) {
	var order repository.Order
	err := tx.Get(ctx, &order, "SELECT "+orderColumns+" FROM orders WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateFieldsTx writes only the given columns, so concurrent edits of other fields survive.
func (r *OrderRepo) UpdateFieldsTx(ctx context.Context, tx db.Tx, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	columns := make([]string, 0, len(fields))
	for column := range fields {
		if _, ok := mutableColumns[column]; !ok {
			return fmt.Errorf("column %q is not updatable", column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	assignments := make([]string, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+1)
		args = append(args, fields[column])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", strings.Join(assignments, ", "), len(args))
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*repository.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders"
	var (
		conditions []string
		args       []any
	)

	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "status NOT IN ('COMPLETED', 'CANCELLED')")
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(id ILIKE $%d OR phone ILIKE $%d OR delivery_address ILIKE $%d OR customer_name ILIKE $%d)", n, n, n, n))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var orders []*repository.Order
	if err := r.db.Select(ctx, &orders, query, args...); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) GetAllActiveOrders(ctx context.Context) ([]*repository.Order, error) {
	orders, err := r.List(ctx, repository.OrderFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get all active orders: %w", err)
	}
	return orders, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
