package postgres

import (
	"context"
	"errors"

	"bgcafe/cafe-service/internal/models"
	"bgcafe/cafe-service/internal/store"

	"github.com/jackc/pgx/v5"
)

// CreateSession inserts a new open session. The insert targets the partial
// unique index on (table_number) WHERE end_time = 0, so a concurrent open
// for the same table is rejected by the store, not by a read-then-write.
func (s *Store) CreateSession(ctx context.Context, input store.CreateSessionInput) (models.TableSession, error) {
	var session models.TableSession
	row := s.pool.QueryRow(ctx, `
		INSERT INTO table_sessions (session_id, table_number, customer_count, start_time, end_time, notes)
		VALUES ($1, $2, $3, $4, 0, $5)
		ON CONFLICT (table_number) WHERE end_time = 0 DO NOTHING
		RETURNING session_id, table_number, customer_count, start_time, end_time, notes
	`, input.SessionID, input.TableNumber, input.CustomerCount, input.StartTime, input.Notes)
	if err := scanSession(row, &session); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.TableSession{}, store.ErrActiveSessionExists
		}
		return models.TableSession{}, err
	}
	return session, nil
}

func (s *Store) ListSessions(ctx context.Context) ([]models.TableSession, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT session_id, table_number, customer_count, start_time, end_time, notes
		FROM table_sessions
		ORDER BY (end_time <> 0) ASC, start_time DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.TableSession
	for rows.Next() {
		var session models.TableSession
		if err := scanSession(rows, &session); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *Store) GetSession(ctx context.Context, tableNumber int, sessionID string) (models.TableSession, error) {
	var session models.TableSession
	row := s.pool.QueryRow(ctx, `
		SELECT session_id, table_number, customer_count, start_time, end_time, notes
		FROM table_sessions
		WHERE table_number = $1 AND session_id = $2
	`, tableNumber, sessionID)
	if err := scanSession(row, &session); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.TableSession{}, store.ErrSessionNotFound
		}
		return models.TableSession{}, err
	}
	return session, nil
}

// ActiveSession returns the single open session for a table. More than one
// open session means the store invariant is broken; that is surfaced loudly
// instead of silently picking one.
func (s *Store) ActiveSession(ctx context.Context, tableNumber int) (models.TableSession, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT session_id, table_number, customer_count, start_time, end_time, notes
		FROM table_sessions
		WHERE table_number = $1 AND end_time = 0
	`, tableNumber)
	if err != nil {
		return models.TableSession{}, err
	}
	defer rows.Close()

	var sessions []models.TableSession
	for rows.Next() {
		var session models.TableSession
		if err := scanSession(rows, &session); err != nil {
			return models.TableSession{}, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return models.TableSession{}, err
	}

	switch len(sessions) {
	case 0:
		return models.TableSession{}, store.ErrNoActiveSession
	case 1:
		return sessions[0], nil
	default:
		return models.TableSession{}, store.ErrMultipleActiveSessions
	}
}

// CloseSession sets the end time, conditioned on the session still being
// open.
func (s *Store) CloseSession(ctx context.Context, tableNumber int, sessionID string, endTime int64) (models.TableSession, error) {
	var session models.TableSession
	row := s.pool.QueryRow(ctx, `
		UPDATE table_sessions
		SET end_time = $3
		WHERE table_number = $1 AND session_id = $2 AND end_time = 0
		RETURNING session_id, table_number, customer_count, start_time, end_time, notes
	`, tableNumber, sessionID, endTime)
	if err := scanSession(row, &session); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.TableSession{}, store.ErrNoActiveSession
		}
		return models.TableSession{}, err
	}
	return session, nil
}

func scanSession(row pgx.Row, session *models.TableSession) error {
	return row.Scan(
		&session.SessionID,
		&session.TableNumber,
		&session.CustomerCount,
		&session.StartTime,
		&session.EndTime,
		&session.Notes,
	)
}
