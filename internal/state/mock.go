package state

import "time"

// Mock is a test double for Manager.
type Mock struct {
	settings  Settings
	saves     int
	backups   []CredentialBackup
	downloads []Download
	closed    bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetSettings() (*Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *Mock) SaveSettings(s Settings) {
	m.saves++
	if s.Tab != "" {
		m.settings.Tab = s.Tab
	}
	if s.Quality != "" {
		m.settings.Quality = s.Quality
	}
}

func (m *Mock) SaveBackup(data string) (int64, error) {
	id := int64(len(m.backups) + 1)
	m.backups = append(m.backups, CredentialBackup{ID: id, Data: data, Source: "renewal", CreatedAt: time.Now().Unix()})
	return id, nil
}

func (m *Mock) ListBackups(limit int) ([]CredentialBackup, error) {
	out := make([]CredentialBackup, 0, len(m.backups))
	for i := len(m.backups) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.backups[i])
	}
	return out, nil
}

func (m *Mock) RecordDownload(r DownloadRecord) (int64, error) {
	id := int64(len(m.downloads) + 1)
	m.downloads = append(m.downloads, Download{
		ID: id, JobID: r.JobID, TrackID: r.TrackID, Artist: r.Artist, Title: r.Title,
		Quality: r.Quality, Path: r.Path, Size: r.Size, TagStatus: r.TagStatus,
		CreatedAt: time.Now().Unix(),
	})
	return id, nil
}

func (m *Mock) RecentDownloads(limit int) ([]Download, error) {
	out := make([]Download, 0, len(m.downloads))
	for i := len(m.downloads) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.downloads[i])
	}
	return out, nil
}

func (m *Mock) DownloadCount(trackID string) (int, error) {
	n := 0
	for _, d := range m.downloads {
		if d.TrackID == trackID {
			n++
		}
	}
	return n, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSettings(s Settings) { m.settings = s }
func (m *Mock) SaveCalls() int         { return m.saves }
func (m *Mock) IsClosed() bool         { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
