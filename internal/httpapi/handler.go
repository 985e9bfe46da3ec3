// Package httpapi is the HTTP boundary: it dispatches requests through the
// route table, enforces the API-key and admin gates in that order, and maps
// manager errors onto the response envelope.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bgcafe/cafe-service/internal/models"
	"bgcafe/cafe-service/internal/order"
	"bgcafe/cafe-service/internal/router"
	"bgcafe/cafe-service/internal/session"
	"bgcafe/cafe-service/internal/store"
)

type Handler struct {
	router      *router.Router
	sessions    *session.Manager
	orders      *order.Manager
	catalog     store.CatalogStore
	creds       Credentials
	allowOrigin string
}

type Options struct {
	Credentials Credentials
	AllowOrigin string
}

func NewHandler(sessions *session.Manager, orders *order.Manager, catalog store.CatalogStore, options Options) *Handler {
	allowOrigin := options.AllowOrigin
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	h := &Handler{
		sessions:    sessions,
		orders:      orders,
		catalog:     catalog,
		creds:       options.Credentials,
		allowOrigin: allowOrigin,
	}
	h.router = router.NewRouter([]router.Route{
		// Board games
		router.New(http.MethodGet, `^/boardgames$`, h.handleListBoardGames, false),
		router.New(http.MethodGet, `^/boardgames/(\d+)$`, h.handleGetBoardGame, false, "boardGameId"),
		router.New(http.MethodPost, `^/boardgames$`, h.handleCreateBoardGame, true),
		router.New(http.MethodPut, `^/boardgames/(\d+)$`, h.handleUpdateBoardGame, true, "boardGameId"),
		router.New(http.MethodDelete, `^/boardgames/(\d+)$`, h.handleDeleteBoardGame, true, "boardGameId"),

		// Menu
		router.New(http.MethodGet, `^/menu$`, h.handleListMenuItems, false),
		router.New(http.MethodGet, `^/menu/(\d+)$`, h.handleGetMenuItem, false, "menuItemId"),
		router.New(http.MethodPost, `^/menu$`, h.handleCreateMenuItem, true),
		router.New(http.MethodPut, `^/menu/(\d+)$`, h.handleUpdateMenuItem, true, "menuItemId"),
		router.New(http.MethodDelete, `^/menu/(\d+)$`, h.handleDeleteMenuItem, true, "menuItemId"),

		// Table sessions
		router.New(http.MethodGet, `^/table-sessions$`, h.handleListSessions, false),
		router.New(http.MethodPost, `^/table-sessions$`, h.handleOpenSession, false),
		router.New(http.MethodDelete, `^/table-sessions/(\d+)$`, h.handleCloseSession, true, "tableNumber"),

		// Orders
		router.New(http.MethodGet, `^/orders/table/(\d+)$`, h.handleListOrders, false, "tableNumber"),
		router.New(http.MethodPost, `^/orders$`, h.handleCreateOrder, false),
		router.New(http.MethodPut, `^/orders/([^/]+)/status$`, h.handleUpdateStatus, true, "orderId"),
		router.New(http.MethodDelete, `^/orders/([^/]+)$`, h.handleCancelOrder, false, "orderId"),

		// Authentication
		router.New(http.MethodPost, `^/login$`, h.handleLogin, false),
	})
	return h
}

// ServeHTTP is the dispatcher. Order matters: CORS preflight short-circuits
// before any auth, the API key is checked before route matching (a missing
// key is 403 even for unknown paths, so route existence never leaks), and
// the admin gate runs only after a route matched.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{})
		return
	}

	if !h.creds.ValidAPIKey(r) {
		h.writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	route, params, ok := h.router.Match(r.Method, r.URL.Path)
	if !ok {
		h.writeError(w, http.StatusNotFound, "Not found")
		return
	}

	if route.RequiresAdmin && !h.creds.ValidAdmin(r) {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params.MergeQuery(r.URL.Query())
	route.Handler(w, r, params)
}

type openSessionRequest struct {
	TableNumber   *int   `json:"tableNumber"`
	CustomerCount int    `json:"customerCount"`
	Notes         string `json:"notes"`
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request, _ router.Params) {
	sessions, err := h.sessions.List(r.Context())
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	if sessions == nil {
		sessions = []models.TableSession{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func (h *Handler) handleOpenSession(w http.ResponseWriter, r *http.Request, _ router.Params) {
	var req openSessionRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.TableNumber == nil {
		h.writeError(w, http.StatusBadRequest, "Missing required field: tableNumber")
		return
	}

	opened, err := h.sessions.Open(r.Context(), *req.TableNumber, req.CustomerCount, req.Notes)
	if err != nil {
		if errors.Is(err, store.ErrActiveSessionExists) {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Table %d already has an active session", *req.TableNumber))
			return
		}
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{"session": opened})
}

func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request, params router.Params) {
	tableNumber, ok := params.Int("tableNumber")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Missing required field: tableNumber")
		return
	}

	closed, err := h.sessions.Close(r.Context(), tableNumber)
	if err != nil {
		var pendingErr *session.PendingOrdersError
		switch {
		case errors.Is(err, store.ErrNoActiveSession):
			h.writeError(w, http.StatusNotFound, fmt.Sprintf("No active session found for table %d", tableNumber))
		case errors.Is(err, store.ErrMultipleActiveSessions):
			h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Multiple active sessions found for table %d", tableNumber))
		case errors.As(err, &pendingErr):
			h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":         "Cannot close session with pending orders",
				"pendingOrders": pendingErr.Orders,
			})
		default:
			h.writeMappedError(w, err)
		}
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"session": closed})
}

type createOrderRequest struct {
	TableNumber *int               `json:"tableNumber"`
	SessionID   *string            `json:"sessionId"`
	Items       []orderItemRequest `json:"items"`
	Notes       string             `json:"notes"`
}

type orderItemRequest struct {
	ID       *int `json:"id"`
	Quantity *int `json:"quantity"`
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request, _ router.Params) {
	var req createOrderRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	switch {
	case req.TableNumber == nil:
		h.writeError(w, http.StatusBadRequest, "Missing required field: tableNumber")
		return
	case req.SessionID == nil:
		h.writeError(w, http.StatusBadRequest, "Missing required field: sessionId")
		return
	case req.Items == nil:
		h.writeError(w, http.StatusBadRequest, "Missing required field: items")
		return
	}

	items := make([]order.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.ID == nil || item.Quantity == nil {
			h.writeError(w, http.StatusBadRequest, "Each item must have id and quantity")
			return
		}
		items = append(items, order.LineItem{ID: *item.ID, Quantity: *item.Quantity})
	}

	created, err := h.orders.Create(r.Context(), *req.TableNumber, *req.SessionID, items, req.Notes)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{"order": created})
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request, params router.Params) {
	tableNumber, ok := params.Int("tableNumber")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Missing required field: tableNumber")
		return
	}
	sessionID, _ := params.Token("sessionId")

	orders, err := h.orders.ListForTable(r.Context(), tableNumber, sessionID)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

type updateStatusRequest struct {
	Status *string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request, params router.Params) {
	orderID, ok := params.Token("orderId")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Missing required field: orderId")
		return
	}

	var req updateStatusRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.Status == nil {
		h.writeError(w, http.StatusBadRequest, "Missing required field: status")
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), orderID, *req.Status)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"order": updated})
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request, params router.Params) {
	orderID, ok := params.Token("orderId")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Missing required field: orderId")
		return
	}

	cancelled, err := h.orders.Cancel(r.Context(), orderID)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"order": cancelled})
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}
	return true
}

// writeMappedError converts manager and store failures into the response
// envelope. Conflicts and validation failures are 400, missing resources
// 404, invariant breaches and anything unrecognized 500.
func (h *Handler) writeMappedError(w http.ResponseWriter, err error) {
	var invalidStatus *order.InvalidStatusError
	var quantityErr *order.ItemQuantityError
	var conflict *store.StatusConflictError

	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, "Table session not found")
	case errors.Is(err, store.ErrOrderNotFound):
		h.writeError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, store.ErrMenuItemNotFound):
		h.writeError(w, http.StatusNotFound, "Menu item not found")
	case errors.Is(err, store.ErrBoardGameNotFound):
		h.writeError(w, http.StatusNotFound, "Board game not found")
	case errors.Is(err, store.ErrMenuItemUnavailable):
		h.writeError(w, http.StatusBadRequest, "Menu item is not available")
	case errors.Is(err, store.ErrActiveSessionExists):
		h.writeError(w, http.StatusBadRequest, "Table already has an active session")
	case errors.Is(err, store.ErrMultipleActiveSessions):
		h.writeError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, order.ErrNoItems),
		errors.As(err, &invalidStatus),
		errors.As(err, &quantityErr),
		errors.As(err, &conflict):
		h.writeError(w, http.StatusBadRequest, capitalize(err.Error()))
	default:
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", h.allowOrigin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Origin, Accept, Content-Type, x-api-key, Authorization")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
