package httpapi

import (
	"net/http"

	"bgcafe/cafe-service/internal/models"
	"bgcafe/cafe-service/internal/router"

	"github.com/shopspring/decimal"
)

// Catalog CRUD is storage pass-through with field validation; updates are
// read-merge-write so a partial body only touches the fields it names.

func (h *Handler) handleListMenuItems(w http.ResponseWriter, r *http.Request, _ router.Params) {
	items, err := h.catalog.ListMenuItems(r.Context())
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"menuItems": items})
}

func (h *Handler) handleGetMenuItem(w http.ResponseWriter, r *http.Request, params router.Params) {
	id, ok := params.Int("menuItemId")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Missing required field: menuItemId")
		return
	}
	item, err := h.catalog.GetMenuItem(r.Context(), id)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"menuItem": item})
}

type menuItemRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	IsAvailable *bool            `json:"isAvailable"`
	ImageURL    *string          `json:"imageUrl"`
}

func (h *Handler) handleCreateMenuItem(w http.ResponseWriter, r *http.Request, _ router.Params) {
	var req menuItemRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	switch {
	case req.Name == nil:
		h.writeError(w, http.StatusBadRequest, "Missing required field: name")
		return
	case req.Price == nil:
		h.writeError(w, http.StatusBadRequest, "Missing required field: price")
		return
	case req.Category == nil:
		h.writeError(w, http.StatusBadRequest, "Missing required field: category")
		return
	}

	item := models.MenuItem{
		Name:        *req.Name,
		Price:       *req.Price,
		Category:    *req.Category,
		IsAvailable: true,
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	created, err := h.catalog.CreateMenuItem(r.Context(), item)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{"menuItem": created})
}

func (h *Handler) handleUpdateMenuItem(w http.ResponseWriter, r *http.Request, params router.Params) {
	id, ok := params.Int("menuItemId")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Missing required field: menuItemId")
		return
	}
	var req menuItemRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	item, err := h.catalog.GetMenuItem(r.Context(), id)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	updated, err := h.catalog.UpdateMenuItem(r.Context(), item)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"menuItem": updated})
}

func (h *Handler) handleDeleteMenuItem(w http.ResponseWriter, r *http.Request, params router.Params) {
	id, ok := params.Int("menuItemId")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Missing required field: menuItemId")
		return
	}
	if err := h.catalog.DeleteMenuItem(r.Context(), id); err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Menu item deleted successfully"})
}

func (h *Handler) handleListBoardGames(w http.ResponseWriter, r *http.Request, _ router.Params) {
	games, err := h.catalog.ListBoardGames(r.Context())
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	if games == nil {
		games = []models.BoardGame{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"boardGames": games})
}

func (h *Handler) handleGetBoardGame(w http.ResponseWriter, r *http.Request, params router.Params) {
	id, ok := params.Int("boardGameId")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Missing required field: boardGameId")
		return
	}
	game, err := h.catalog.GetBoardGame(r.Context(), id)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"boardGame": game})
}

type boardGameRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PlayerMin   *int    `json:"playerMin"`
	PlayerMax   *int    `json:"playerMax"`
	PlayTime    *int    `json:"playTime"`
	Difficulty  *int    `json:"difficulty"`
	GameType    *string `json:"gameType"`
	ImageURL    *string `json:"imageUrl"`
}

func (h *Handler) handleCreateBoardGame(w http.ResponseWriter, r *http.Request, _ router.Params) {
	var req boardGameRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	required := []struct {
		name  string
		unset bool
	}{
		{"name", req.Name == nil},
		{"description", req.Description == nil},
		{"playerMin", req.PlayerMin == nil},
		{"playerMax", req.PlayerMax == nil},
		{"playTime", req.PlayTime == nil},
		{"imageUrl", req.ImageURL == nil},
	}
	for _, field := range required {
		if field.unset {
			h.writeError(w, http.StatusBadRequest, "Missing required field: "+field.name)
			return
		}
	}

	game := models.BoardGame{
		Name:        *req.Name,
		Description: *req.Description,
		PlayerMin:   *req.PlayerMin,
		PlayerMax:   *req.PlayerMax,
		PlayTime:    *req.PlayTime,
		ImageURL:    *req.ImageURL,
		Difficulty:  1,
	}
	if req.Difficulty != nil {
		game.Difficulty = *req.Difficulty
	}
	if req.GameType != nil {
		game.GameType = *req.GameType
	}

	created, err := h.catalog.CreateBoardGame(r.Context(), game)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{"boardGame": created})
}

func (h *Handler) handleUpdateBoardGame(w http.ResponseWriter, r *http.Request, params router.Params) {
	id, ok := params.Int("boardGameId")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Missing required field: boardGameId")
		return
	}
	var req boardGameRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	game, err := h.catalog.GetBoardGame(r.Context(), id)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	if req.Name != nil {
		game.Name = *req.Name
	}
	if req.Description != nil {
		game.Description = *req.Description
	}
	if req.PlayerMin != nil {
		game.PlayerMin = *req.PlayerMin
	}
	if req.PlayerMax != nil {
		game.PlayerMax = *req.PlayerMax
	}
	if req.PlayTime != nil {
		game.PlayTime = *req.PlayTime
	}
	if req.Difficulty != nil {
		game.Difficulty = *req.Difficulty
	}
	if req.GameType != nil {
		game.GameType = *req.GameType
	}
	if req.ImageURL != nil {
		game.ImageURL = *req.ImageURL
	}

	updated, err := h.catalog.UpdateBoardGame(r.Context(), game)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"boardGame": updated})
}

func (h *Handler) handleDeleteBoardGame(w http.ResponseWriter, r *http.Request, params router.Params) {
	id, ok := params.Int("boardGameId")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Missing required field: boardGameId")
		return
	}
	if err := h.catalog.DeleteBoardGame(r.Context(), id); err != nil {
		h.writeMappedError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Board game deleted successfully"})
}
