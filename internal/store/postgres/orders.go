package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"bgcafe/cafe-service/internal/models"
	"bgcafe/cafe-service/internal/store"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateOrder(ctx context.Context, order models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO orders (order_id, table_number, session_id, items, total_amount, status, created_at, updated_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, order.OrderID, order.TableNumber, order.SessionID, items, order.TotalAmount.String(), order.Status, order.CreatedAt, order.UpdatedAt, order.Notes)
	return err
}

// ListOrders returns a table's orders, scoped to one session when sessionID
// is non-empty.
func (s *Store) ListOrders(ctx context.Context, tableNumber int, sessionID string) ([]models.Order, error) {
	query := `
		SELECT order_id, table_number, session_id, items, total_amount::text, status, created_at, updated_at, notes
		FROM orders
		WHERE table_number = $1
	`
	args := []interface{}{tableNumber}
	if sessionID != "" {
		query += " AND session_id = $2"
		args = append(args, sessionID)
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *Store) PendingOrders(ctx context.Context, tableNumber int, sessionID string) ([]models.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT order_id, table_number, session_id, items, total_amount::text, status, created_at, updated_at, notes
		FROM orders
		WHERE table_number = $1 AND session_id = $2 AND status IN ($3, $4)
		ORDER BY created_at ASC
	`, tableNumber, sessionID, models.StatusPending, models.StatusPreparing)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string, updatedAt int64) (models.Order, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE orders
		SET status = $2, updated_at = $3
		WHERE order_id = $1
		RETURNING order_id, table_number, session_id, items, total_amount::text, status, created_at, updated_at, notes
	`, orderID, status, updatedAt)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, store.ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

// CancelOrder is a compare-and-set: the row is locked, the current status
// checked, and the update applied in one transaction.
func (s *Store) CancelOrder(ctx context.Context, orderID string, updatedAt int64) (models.Order, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Order{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var status string
	if err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`, orderID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrOrderNotFound
		}
		return models.Order{}, err
	}
	if !store.Cancellable(status) {
		err = &store.StatusConflictError{Status: status}
		return models.Order{}, err
	}

	row := tx.QueryRow(ctx, `
		UPDATE orders
		SET status = $2, updated_at = $3
		WHERE order_id = $1
		RETURNING order_id, table_number, session_id, items, total_amount::text, status, created_at, updated_at, notes
	`, orderID, models.StatusCancelled, updatedAt)
	order, err := scanOrder(row)
	if err != nil {
		return models.Order{}, err
	}
	if err = tx.Commit(ctx); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func collectOrders(rows pgx.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var order models.Order
	var items []byte
	var amount string
	if err := row.Scan(
		&order.OrderID,
		&order.TableNumber,
		&order.SessionID,
		&items,
		&amount,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.Notes,
	); err != nil {
		return models.Order{}, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return models.Order{}, err
	}
	total, err := parseAmount(amount)
	if err != nil {
		return models.Order{}, err
	}
	order.TotalAmount = total
	return order, nil
}
