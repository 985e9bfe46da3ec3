package postgres

import (
	"context"
	"errors"

	"bgcafe/cafe-service/internal/models"
	"bgcafe/cafe-service/internal/store"

	"github.com/jackc/pgx/v5"
)

// Catalog ids are allocated by the database sequence; nothing ever scans for
// a maximum.

func (s *Store) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price::text, category, description, is_available, image_url
		FROM menu_items
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetMenuItem(ctx context.Context, id int) (models.MenuItem, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, price::text, category, description, is_available, image_url
		FROM menu_items
		WHERE id = $1
	`, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MenuItem{}, store.ErrMenuItemNotFound
		}
		return models.MenuItem{}, err
	}
	return item, nil
}

func (s *Store) CreateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO menu_items (name, price, category, description, is_available, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, price::text, category, description, is_available, image_url
	`, item.Name, item.Price.String(), item.Category, item.Description, item.IsAvailable, item.ImageURL)
	return scanMenuItem(row)
}

func (s *Store) UpdateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE menu_items
		SET name = $2, price = $3, category = $4, description = $5, is_available = $6, image_url = $7
		WHERE id = $1
		RETURNING id, name, price::text, category, description, is_available, image_url
	`, item.ID, item.Name, item.Price.String(), item.Category, item.Description, item.IsAvailable, item.ImageURL)
	updated, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MenuItem{}, store.ErrMenuItemNotFound
		}
		return models.MenuItem{}, err
	}
	return updated, nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrMenuItemNotFound
	}
	return nil
}

func (s *Store) ListBoardGames(ctx context.Context) ([]models.BoardGame, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, player_min, player_max, play_time, difficulty, game_type, image_url
		FROM board_games
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.BoardGame
	for rows.Next() {
		game, err := scanBoardGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Store) GetBoardGame(ctx context.Context, id int) (models.BoardGame, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, description, player_min, player_max, play_time, difficulty, game_type, image_url
		FROM board_games
		WHERE id = $1
	`, id)
	game, err := scanBoardGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BoardGame{}, store.ErrBoardGameNotFound
		}
		return models.BoardGame{}, err
	}
	return game, nil
}

func (s *Store) CreateBoardGame(ctx context.Context, game models.BoardGame) (models.BoardGame, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO board_games (name, description, player_min, player_max, play_time, difficulty, game_type, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, description, player_min, player_max, play_time, difficulty, game_type, image_url
	`, game.Name, game.Description, game.PlayerMin, game.PlayerMax, game.PlayTime, game.Difficulty, game.GameType, game.ImageURL)
	return scanBoardGame(row)
}

func (s *Store) UpdateBoardGame(ctx context.Context, game models.BoardGame) (models.BoardGame, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE board_games
		SET name = $2, description = $3, player_min = $4, player_max = $5, play_time = $6, difficulty = $7, game_type = $8, image_url = $9
		WHERE id = $1
		RETURNING id, name, description, player_min, player_max, play_time, difficulty, game_type, image_url
	`, game.ID, game.Name, game.Description, game.PlayerMin, game.PlayerMax, game.PlayTime, game.Difficulty, game.GameType, game.ImageURL)
	updated, err := scanBoardGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BoardGame{}, store.ErrBoardGameNotFound
		}
		return models.BoardGame{}, err
	}
	return updated, nil
}

func (s *Store) DeleteBoardGame(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM board_games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrBoardGameNotFound
	}
	return nil
}

func scanMenuItem(row pgx.Row) (models.MenuItem, error) {
	var item models.MenuItem
	var price string
	if err := row.Scan(&item.ID, &item.Name, &price, &item.Category, &item.Description, &item.IsAvailable, &item.ImageURL); err != nil {
		return models.MenuItem{}, err
	}
	parsed, err := parseAmount(price)
	if err != nil {
		return models.MenuItem{}, err
	}
	item.Price = parsed
	return item, nil
}

func scanBoardGame(row pgx.Row) (models.BoardGame, error) {
	var game models.BoardGame
	if err := row.Scan(
		&game.ID,
		&game.Name,
		&game.Description,
		&game.PlayerMin,
		&game.PlayerMax,
		&game.PlayTime,
		&game.Difficulty,
		&game.GameType,
		&game.ImageURL,
	); err != nil {
		return models.BoardGame{}, err
	}
	return game, nil
}
