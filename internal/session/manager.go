// Package session owns the table-session lifecycle: open, list, close.
package session

import (
	"context"
	"fmt"
	"time"

	"bgcafe/cafe-service/internal/models"
	"bgcafe/cafe-service/internal/store"

	"github.com/google/uuid"
)

// PendingOrdersError reports a close refused because the session still has
// pending or preparing orders. The blocking orders are carried so the caller
// can act on them.
type PendingOrdersError struct {
	Orders []models.Order
}

func (e *PendingOrdersError) Error() string {
	return fmt.Sprintf("cannot close session with %d pending orders", len(e.Orders))
}

type Manager struct {
	sessions store.SessionStore
	orders   store.OrderStore
	now      func() time.Time
}

func NewManager(sessions store.SessionStore, orders store.OrderStore) *Manager {
	return &Manager{
		sessions: sessions,
		orders:   orders,
		now:      time.Now,
	}
}

// Open starts a new session for a table. The uniqueness check ("at most one
// open session per table") is enforced by the store's conditional insert, not
// by a preceding read.
func (m *Manager) Open(ctx context.Context, tableNumber, customerCount int, notes string) (models.TableSession, error) {
	if customerCount <= 0 {
		customerCount = 1
	}
	return m.sessions.CreateSession(ctx, store.CreateSessionInput{
		SessionID:     uuid.NewString(),
		TableNumber:   tableNumber,
		CustomerCount: customerCount,
		StartTime:     m.now().Unix(),
		Notes:         notes,
	})
}

// List returns every session, open ones first, newest start time first
// within each group.
func (m *Manager) List(ctx context.Context) ([]models.TableSession, error) {
	return m.sessions.ListSessions(ctx)
}

// Close ends the active session for a table. It refuses to close while any
// order for the session is still pending or preparing. The pending-orders
// read and the end-time write are separate store calls; an order created in
// between can slip through (accepted, documented limitation).
func (m *Manager) Close(ctx context.Context, tableNumber int) (models.TableSession, error) {
	active, err := m.sessions.ActiveSession(ctx, tableNumber)
	if err != nil {
		return models.TableSession{}, err
	}

	pending, err := m.orders.PendingOrders(ctx, tableNumber, active.SessionID)
	if err != nil {
		return models.TableSession{}, err
	}
	if len(pending) > 0 {
		return models.TableSession{}, &PendingOrdersError{Orders: pending}
	}

	return m.sessions.CloseSession(ctx, tableNumber, active.SessionID, m.now().Unix())
}
