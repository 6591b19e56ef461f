package state

// Interface is the state manager contract used by the app.
type Interface interface {
	GetSettings() (*Settings, error)
	SaveSettings(s Settings)
	SaveBackup(data string) (int64, error)
	ListBackups(limit int) ([]CredentialBackup, error)
	RecordDownload(r DownloadRecord) (int64, error)
	RecentDownloads(limit int) ([]Download, error)
	DownloadCount(trackID string) (int, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
