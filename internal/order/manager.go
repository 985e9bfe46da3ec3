// Package order owns the order lifecycle: creation with catalog pricing,
// listing, status updates, and cancellation.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bgcafe/cafe-service/internal/models"
	"bgcafe/cafe-service/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNoItems = errors.New("order must contain at least one item")

// InvalidStatusError reports an unrecognized status value, enumerating the
// recognized ones.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q. Valid values are: %s", e.Status, strings.Join(store.OrderStatuses, ", "))
}

// ItemQuantityError reports a line item with a non-positive quantity.
type ItemQuantityError struct {
	ItemID int
}

func (e *ItemQuantityError) Error() string {
	return fmt.Sprintf("item %d quantity must be positive", e.ItemID)
}

type LineItem struct {
	ID       int
	Quantity int
}

type Manager struct {
	orders   store.OrderStore
	sessions store.SessionStore
	catalog  store.CatalogStore
	now      func() time.Time
}

func NewManager(orders store.OrderStore, sessions store.SessionStore, catalog store.CatalogStore) *Manager {
	return &Manager{
		orders:   orders,
		sessions: sessions,
		catalog:  catalog,
		now:      time.Now,
	}
}

// Create prices and persists a new order against an existing table session.
// The session may already be closed; only its existence is required. Each
// line item is resolved against the catalog and snapshotted with its current
// price; totals use exact decimal arithmetic.
func (m *Manager) Create(ctx context.Context, tableNumber int, sessionID string, items []LineItem, notes string) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrNoItems
	}

	if _, err := m.sessions.GetSession(ctx, tableNumber, sessionID); err != nil {
		return models.Order{}, err
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return models.Order{}, &ItemQuantityError{ItemID: item.ID}
		}
		menuItem, err := m.catalog.GetMenuItem(ctx, item.ID)
		if err != nil {
			return models.Order{}, err
		}
		if !menuItem.IsAvailable {
			return models.Order{}, store.ErrMenuItemUnavailable
		}
		itemTotal := menuItem.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(itemTotal)
		orderItems = append(orderItems, models.OrderItem{
			ID:        menuItem.ID,
			Name:      menuItem.Name,
			Price:     menuItem.Price,
			Quantity:  item.Quantity,
			ItemTotal: itemTotal,
		})
	}

	now := m.now().Unix()
	order := models.Order{
		OrderID:     uuid.NewString(),
		TableNumber: tableNumber,
		SessionID:   sessionID,
		Items:       orderItems,
		TotalAmount: total,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Notes:       notes,
	}
	if err := m.orders.CreateOrder(ctx, order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// ListForTable returns orders for a table; with a session id, only that
// session's orders, otherwise every order ever placed at the table.
func (m *Manager) ListForTable(ctx context.Context, tableNumber int, sessionID string) ([]models.Order, error) {
	return m.orders.ListOrders(ctx, tableNumber, sessionID)
}

// UpdateStatus force-sets a recognized status on an existing order. Beyond
// value validity and order existence nothing is checked; any recognized
// status may be set regardless of the current one.
func (m *Manager) UpdateStatus(ctx context.Context, orderID, status string) (models.Order, error) {
	if !store.ValidStatus(status) {
		return models.Order{}, &InvalidStatusError{Status: status}
	}
	return m.orders.UpdateOrderStatus(ctx, orderID, status, m.now().Unix())
}

// Cancel marks an order cancelled. Only pending or preparing orders may be
// cancelled; the store rejects anything else with the current status.
func (m *Manager) Cancel(ctx context.Context, orderID string) (models.Order, error) {
	return m.orders.CancelOrder(ctx, orderID, m.now().Unix())
}
