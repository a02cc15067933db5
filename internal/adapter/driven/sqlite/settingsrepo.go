package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SettingsStore = (*SettingsRepo)(nil)

// Keys under which each preference is stored in the settings table.
const (
	settingCollectionID  = "collection_id"
	settingTitleProperty = "title_property"
	settingURLProperty   = "url_property"
	settingAutoOpen      = "auto_open"
)

// SettingsRepo is the SQLite implementation of the SettingsStore port.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the stored settings with defaults applied for anything unset
// or unrecognized.
func (r *SettingsRepo) Get(ctx context.Context) (model.Settings, error) {
	settings := model.DefaultSettings()

	const query = `SELECT key, value FROM settings`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return settings, fmt.Errorf("get settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("scan setting: %w", err)
		}

		switch key {
		case settingCollectionID:
			settings.CollectionID = value
		case settingTitleProperty:
			if value != "" {
				settings.TitleProperty = value
			}
		case settingURLProperty:
			if value != "" {
				settings.URLProperty = value
			}
		case settingAutoOpen:
			if mode := model.AutoOpenMode(value); mode.Valid() {
				settings.AutoOpen = mode
			}
		}
	}
	if err := rows.Err(); err != nil {
		return settings, fmt.Errorf("iterate settings: %w", err)
	}

	return settings, nil
}

// Put stores all settings in one transaction.
func (r *SettingsRepo) Put(ctx context.Context, settings model.Settings) error {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`
	pairs := map[string]string{
		settingCollectionID:  settings.CollectionID,
		settingTitleProperty: settings.TitleProperty,
		settingURLProperty:   settings.URLProperty,
		settingAutoOpen:      string(settings.AutoOpen),
	}
	for key, value := range pairs {
		if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
			return fmt.Errorf("put setting %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings tx: %w", err)
	}
	return nil
}
