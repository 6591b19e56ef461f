package state

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidBackup is returned when backup data is not a JSON document.
var ErrInvalidBackup = errors.New("backup data is not valid JSON")

// CredentialBackup is a saved copy of renewed credentials.
type CredentialBackup struct {
	ID        int64  `db:"id"`
	Data      string `db:"data"`
	Source    string `db:"source"`
	CreatedAt int64  `db:"created_at"`
}

// Created returns the backup timestamp.
func (b CredentialBackup) Created() time.Time {
	return time.Unix(b.CreatedAt, 0)
}

// SaveBackup stores the credential data returned by a forced renewal.
func (m *Manager) SaveBackup(data string) (int64, error) {
	if !json.Valid([]byte(data)) {
		return 0, ErrInvalidBackup
	}
	res, err := m.db.Exec(`
		INSERT INTO credential_backups (data, source, created_at) VALUES (?, 'renewal', ?)
	`, data, m.now().Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListBackups returns up to limit backups, newest first.
func (m *Manager) ListBackups(limit int) ([]CredentialBackup, error) {
	var backups []CredentialBackup
	err := m.db.Select(&backups, `
		SELECT id, data, source, created_at FROM credential_backups
		ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	return backups, err
}
