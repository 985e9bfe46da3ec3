package store

import (
	"context"

	"bgcafe/cafe-service/internal/models"
)

type CreateSessionInput struct {
	SessionID     string
	TableNumber   int
	CustomerCount int
	StartTime     int64
	Notes         string
}

// SessionStore persists table sessions. CreateSession must be a conditional
// write: it fails with ErrActiveSessionExists when the table already has an
// open session, even under concurrent opens for the same table.
type SessionStore interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (models.TableSession, error)
	ListSessions(ctx context.Context) ([]models.TableSession, error)
	GetSession(ctx context.Context, tableNumber int, sessionID string) (models.TableSession, error)
	ActiveSession(ctx context.Context, tableNumber int) (models.TableSession, error)
	CloseSession(ctx context.Context, tableNumber int, sessionID string, endTime int64) (models.TableSession, error)
}

// OrderStore persists orders. UpdateOrderStatus and CancelOrder are
// conditional writes keyed on the current record, not on an earlier read.
type OrderStore interface {
	CreateOrder(ctx context.Context, order models.Order) error
	ListOrders(ctx context.Context, tableNumber int, sessionID string) ([]models.Order, error)
	PendingOrders(ctx context.Context, tableNumber int, sessionID string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string, updatedAt int64) (models.Order, error)
	CancelOrder(ctx context.Context, orderID string, updatedAt int64) (models.Order, error)
}

type CatalogStore interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int) error

	ListBoardGames(ctx context.Context) ([]models.BoardGame, error)
	GetBoardGame(ctx context.Context, id int) (models.BoardGame, error)
	CreateBoardGame(ctx context.Context, game models.BoardGame) (models.BoardGame, error)
	UpdateBoardGame(ctx context.Context, game models.BoardGame) (models.BoardGame, error)
	DeleteBoardGame(ctx context.Context, id int) error
}
