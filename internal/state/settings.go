package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	dbutil "github.com/llehouerou/tunefetch/internal/db"
	"github.com/llehouerou/tunefetch/internal/errmsg"
)

// Setting keys.
const (
	SettingTab     = "last_tab"
	SettingQuality = "quality"
)

// Settings are the choices restored on the next launch. Empty fields
// mean "use the configured default".
type Settings struct {
	Tab     string
	Quality string
}

type settingRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

func getSettings(db *sqlx.DB) (*Settings, error) {
	var rows []settingRow
	err := db.Select(&rows, `SELECT key, value FROM settings WHERE key IN (?, ?)`, SettingTab, SettingQuality)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	s := &Settings{}
	for _, r := range rows {
		switch r.Key {
		case SettingTab:
			s.Tab = r.Value
		case SettingQuality:
			s.Quality = r.Value
		}
	}
	return s, nil
}

func saveSettings(db *sqlx.DB, s Settings, now time.Time) error {
	return dbutil.WithTx(db, func(tx *sqlx.Tx) error {
		for key, value := range map[string]string{SettingTab: s.Tab, SettingQuality: s.Quality} {
			if value == "" {
				continue
			}
			_, err := tx.Exec(`
				INSERT INTO settings (key, value, updated_at)
				VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
			`, key, value, now.Unix())
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetSettings returns the saved settings; fields never saved are empty.
func (m *Manager) GetSettings() (*Settings, error) {
	return getSettings(m.db)
}

// SaveSettings persists s after a short debounce, so rapid tab or
// quality cycling writes once.
func (m *Manager) SaveSettings(s Settings) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending == nil {
			return
		}
		if err := saveSettings(m.db, *pending, m.now()); err != nil {
			m.log.Warn(errmsg.Format(errmsg.OpSettingsSave, err))
		}
	})
}
