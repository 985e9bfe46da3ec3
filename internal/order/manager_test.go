package order

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bgcafe/cafe-service/internal/models"
	"bgcafe/cafe-service/internal/store"

	"github.com/shopspring/decimal"
)

type fakeOrderStore struct {
	createFn func(ctx context.Context, order models.Order) error
	listFn   func(ctx context.Context, tableNumber int, sessionID string) ([]models.Order, error)
	updateFn func(ctx context.Context, orderID, status string, updatedAt int64) (models.Order, error)
	cancelFn func(ctx context.Context, orderID string, updatedAt int64) (models.Order, error)
}

func (f fakeOrderStore) CreateOrder(ctx context.Context, order models.Order) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, order)
}

func (f fakeOrderStore) ListOrders(ctx context.Context, tableNumber int, sessionID string) ([]models.Order, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, tableNumber, sessionID)
}

func (f fakeOrderStore) PendingOrders(ctx context.Context, tableNumber int, sessionID string) ([]models.Order, error) {
	return nil, nil
}

func (f fakeOrderStore) UpdateOrderStatus(ctx context.Context, orderID, status string, updatedAt int64) (models.Order, error) {
	if f.updateFn == nil {
		return models.Order{}, nil
	}
	return f.updateFn(ctx, orderID, status, updatedAt)
}

func (f fakeOrderStore) CancelOrder(ctx context.Context, orderID string, updatedAt int64) (models.Order, error) {
	if f.cancelFn == nil {
		return models.Order{}, nil
	}
	return f.cancelFn(ctx, orderID, updatedAt)
}

type fakeSessionStore struct {
	getFn func(ctx context.Context, tableNumber int, sessionID string) (models.TableSession, error)
}

func (f fakeSessionStore) CreateSession(ctx context.Context, input store.CreateSessionInput) (models.TableSession, error) {
	return models.TableSession{}, nil
}

func (f fakeSessionStore) ListSessions(ctx context.Context) ([]models.TableSession, error) {
	return nil, nil
}

func (f fakeSessionStore) GetSession(ctx context.Context, tableNumber int, sessionID string) (models.TableSession, error) {
	if f.getFn == nil {
		return models.TableSession{TableNumber: tableNumber, SessionID: sessionID}, nil
	}
	return f.getFn(ctx, tableNumber, sessionID)
}

func (f fakeSessionStore) ActiveSession(ctx context.Context, tableNumber int) (models.TableSession, error) {
	return models.TableSession{}, nil
}

func (f fakeSessionStore) CloseSession(ctx context.Context, tableNumber int, sessionID string, endTime int64) (models.TableSession, error) {
	return models.TableSession{}, nil
}

type fakeCatalog struct {
	items map[int]models.MenuItem
}

func (f fakeCatalog) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) { return nil, nil }

func (f fakeCatalog) GetMenuItem(ctx context.Context, id int) (models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return models.MenuItem{}, store.ErrMenuItemNotFound
	}
	return item, nil
}

func (f fakeCatalog) CreateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	return item, nil
}

func (f fakeCatalog) UpdateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	return item, nil
}

func (f fakeCatalog) DeleteMenuItem(ctx context.Context, id int) error { return nil }

func (f fakeCatalog) ListBoardGames(ctx context.Context) ([]models.BoardGame, error) {
	return nil, nil
}

func (f fakeCatalog) GetBoardGame(ctx context.Context, id int) (models.BoardGame, error) {
	return models.BoardGame{}, store.ErrBoardGameNotFound
}

func (f fakeCatalog) CreateBoardGame(ctx context.Context, game models.BoardGame) (models.BoardGame, error) {
	return game, nil
}

func (f fakeCatalog) UpdateBoardGame(ctx context.Context, game models.BoardGame) (models.BoardGame, error) {
	return game, nil
}

func (f fakeCatalog) DeleteBoardGame(ctx context.Context, id int) error { return nil }

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testCatalog() fakeCatalog {
	return fakeCatalog{items: map[int]models.MenuItem{
		1: {ID: 1, Name: "Coffee", Price: price("5.00"), IsAvailable: true},
		2: {ID: 2, Name: "Scone", Price: price("3.50"), IsAvailable: true},
		3: {ID: 3, Name: "Cocoa", Price: price("4.20"), IsAvailable: false},
	}}
}

func TestCreateComputesExactTotal(t *testing.T) {
	var persisted models.Order
	orders := fakeOrderStore{
		createFn: func(ctx context.Context, order models.Order) error {
			persisted = order
			return nil
		},
	}
	m := NewManager(orders, fakeSessionStore{}, testCatalog())

	got, err := m.Create(context.Background(), 3, "sess-1", []LineItem{
		{ID: 1, Quantity: 2},
		{ID: 2, Quantity: 1},
	}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !got.TotalAmount.Equal(price("13.50")) {
		t.Fatalf("expected total 13.50, got %s", got.TotalAmount)
	}
	if got.Status != models.StatusPending {
		t.Fatalf("new order must be pending, got %s", got.Status)
	}
	if len(persisted.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(persisted.Items))
	}
	if !persisted.Items[0].ItemTotal.Equal(price("10.00")) {
		t.Fatalf("expected line total 10.00, got %s", persisted.Items[0].ItemTotal)
	}
	if persisted.OrderID == "" {
		t.Fatal("expected a generated order id")
	}
}

func TestCreateTotalStableAcrossRuns(t *testing.T) {
	m := NewManager(fakeOrderStore{}, fakeSessionStore{}, testCatalog())

	for i := 0; i < 100; i++ {
		got, err := m.Create(context.Background(), 3, "sess-1", []LineItem{
			{ID: 1, Quantity: 2},
			{ID: 2, Quantity: 1},
		}, "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if got.TotalAmount.String() != "13.50" {
			t.Fatalf("run %d: expected 13.50, got %s", i, got.TotalAmount)
		}
	}
}

func TestCreateUnknownMenuItem(t *testing.T) {
	m := NewManager(fakeOrderStore{}, fakeSessionStore{}, testCatalog())

	_, err := m.Create(context.Background(), 3, "sess-1", []LineItem{{ID: 99, Quantity: 1}}, "")
	if !errors.Is(err, store.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
}

func TestCreateUnavailableItemPersistsNothing(t *testing.T) {
	orders := fakeOrderStore{
		createFn: func(ctx context.Context, order models.Order) error {
			t.Fatal("order must not be persisted")
			return nil
		},
	}
	m := NewManager(orders, fakeSessionStore{}, testCatalog())

	_, err := m.Create(context.Background(), 3, "sess-1", []LineItem{
		{ID: 1, Quantity: 1},
		{ID: 3, Quantity: 1},
	}, "")
	if !errors.Is(err, store.ErrMenuItemUnavailable) {
		t.Fatalf("expected ErrMenuItemUnavailable, got %v", err)
	}
}

func TestCreateUnknownSession(t *testing.T) {
	sessions := fakeSessionStore{
		getFn: func(ctx context.Context, tableNumber int, sessionID string) (models.TableSession, error) {
			return models.TableSession{}, store.ErrSessionNotFound
		},
	}
	m := NewManager(fakeOrderStore{}, sessions, testCatalog())

	_, err := m.Create(context.Background(), 3, "missing", []LineItem{{ID: 1, Quantity: 1}}, "")
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	m := NewManager(fakeOrderStore{}, fakeSessionStore{}, testCatalog())

	if _, err := m.Create(context.Background(), 3, "sess-1", nil, ""); !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	m := NewManager(fakeOrderStore{}, fakeSessionStore{}, testCatalog())

	_, err := m.Create(context.Background(), 3, "sess-1", []LineItem{{ID: 1, Quantity: 0}}, "")
	var qtyErr *ItemQuantityError
	if !errors.As(err, &qtyErr) {
		t.Fatalf("expected ItemQuantityError, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	m := NewManager(fakeOrderStore{}, fakeSessionStore{}, testCatalog())

	_, err := m.UpdateStatus(context.Background(), "order-1", "burnt")
	var invalid *InvalidStatusError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStatusError, got %v", err)
	}
	if !strings.Contains(invalid.Error(), "burnt") {
		t.Fatalf("error must name the rejected value: %s", invalid.Error())
	}
	for _, status := range store.OrderStatuses {
		if !strings.Contains(invalid.Error(), status) {
			t.Fatalf("error must enumerate %q: %s", status, invalid.Error())
		}
	}
}

func TestUpdateStatusPermissive(t *testing.T) {
	// Any recognized status may be force-set regardless of the current one;
	// the store is only consulted for existence.
	updated := 0
	orders := fakeOrderStore{
		updateFn: func(ctx context.Context, orderID, status string, updatedAt int64) (models.Order, error) {
			updated++
			return models.Order{OrderID: orderID, Status: status, UpdatedAt: updatedAt}, nil
		},
	}
	m := NewManager(orders, fakeSessionStore{}, testCatalog())

	for _, status := range store.OrderStatuses {
		if _, err := m.UpdateStatus(context.Background(), "order-1", status); err != nil {
			t.Fatalf("update to %s: %v", status, err)
		}
	}
	if updated != len(store.OrderStatuses) {
		t.Fatalf("expected %d updates, got %d", len(store.OrderStatuses), updated)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	orders := fakeOrderStore{
		updateFn: func(ctx context.Context, orderID, status string, updatedAt int64) (models.Order, error) {
			return models.Order{}, store.ErrOrderNotFound
		},
	}
	m := NewManager(orders, fakeSessionStore{}, testCatalog())

	if _, err := m.UpdateStatus(context.Background(), "missing", models.StatusReady); !errors.Is(err, store.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestCancelConflictCarriesStatus(t *testing.T) {
	orders := fakeOrderStore{
		cancelFn: func(ctx context.Context, orderID string, updatedAt int64) (models.Order, error) {
			return models.Order{}, &store.StatusConflictError{Status: models.StatusDelivered}
		},
	}
	m := NewManager(orders, fakeSessionStore{}, testCatalog())

	_, err := m.Cancel(context.Background(), "order-1")
	var conflict *store.StatusConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected StatusConflictError, got %v", err)
	}
	if conflict.Status != models.StatusDelivered {
		t.Fatalf("expected delivered, got %s", conflict.Status)
	}
}
