package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// stateRepo implements StateRepo on the local_state key/value table.
type stateRepo struct {
	db *sqlx.DB
}

func (r *stateRepo) Load(ctx context.Context) (*StateData, error) {
	var raw []byte
	err := r.db.QueryRowxContext(ctx, `SELECT value FROM local_state WHERE key = ?`, StateKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state[%s]: %w", StateKey, err)
	}

	var data StateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return &data, nil
}

func (r *stateRepo) Save(ctx context.Context, data *StateData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO local_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, StateKey, raw)
	if err != nil {
		return fmt.Errorf("save state[%s]: %w", StateKey, err)
	}
	return nil
}

func (r *stateRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM local_state WHERE key = ?`, StateKey); err != nil {
		return fmt.Errorf("clear state[%s]: %w", StateKey, err)
	}
	return nil
}
