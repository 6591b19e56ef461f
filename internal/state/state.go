package state

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "tunefetch"
	dbFileName   = "tunefetch.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sqlx.DB
	log       *zap.Logger
	now       func() time.Time
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Settings
}

// Open opens the state database under the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	return OpenPath(dbPath)
}

// OpenPath opens the state database at path. ":memory:" gives a
// private in-memory database.
func OpenPath(path string) (*Manager, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, log: zap.NewNop(), now: time.Now}, nil
}

// SetLogger sets where background write failures are reported.
func (m *Manager) SetLogger(log *zap.Logger) {
	m.log = log
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending settings
	if pending != nil {
		_ = saveSettings(m.db, *pending, m.now())
	}

	return m.db.Close()
}

func (m *Manager) DB() *sqlx.DB {
	return m.db
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
