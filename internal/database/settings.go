package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"dropship-dashboard/internal/models"
)

// SaveSettings substitui o blob de configurações salvo
func (db *DB) SaveSettings(ctx context.Context, s models.Settings) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM settings"); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?)", models.SettingsKey, string(blob)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// LoadSettings retorna as configurações salvas, ou o valor zero quando não há nenhuma
func (db *DB) LoadSettings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	var blob string
	err := db.conn.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", models.SettingsKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}
