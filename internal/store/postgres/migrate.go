package postgres

import "context"

// The partial unique index on table_sessions is what enforces "at most one
// open session per table": a concurrent open for the same table hits the
// index and is rejected by the insert itself.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS table_sessions (
		session_id TEXT PRIMARY KEY,
		table_number BIGINT NOT NULL,
		customer_count INT NOT NULL,
		start_time BIGINT NOT NULL,
		end_time BIGINT NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS table_sessions_active_idx
		ON table_sessions (table_number) WHERE end_time = 0`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		table_number BIGINT NOT NULL,
		session_id TEXT NOT NULL,
		items JSONB NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS orders_table_idx ON orders (table_number)`,
	`CREATE INDEX IF NOT EXISTS orders_table_session_idx ON orders (table_number, session_id)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		image_url TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS board_games (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		player_min INT NOT NULL,
		player_max INT NOT NULL,
		play_time INT NOT NULL,
		difficulty INT NOT NULL DEFAULT 1,
		game_type TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT ''
	)`,
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
