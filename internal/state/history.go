package state

import (
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/tunefetch/internal/db"
)

// Download is one saved file.
type Download struct {
	ID        int64          `db:"id"`
	JobID     string         `db:"job_id"`
	TrackID   string         `db:"track_id"`
	Artist    string         `db:"artist"`
	Title     string         `db:"title"`
	Album     sql.NullString `db:"album"`
	Quality   string         `db:"quality"`
	Path      string         `db:"path"`
	Size      int64          `db:"size"`
	TagStatus string         `db:"tag_status"`
	TagError  sql.NullString `db:"tag_error"`
	CreatedAt int64          `db:"created_at"`
}

// DownloadRecord is the input for RecordDownload.
type DownloadRecord struct {
	JobID     string
	TrackID   string
	Artist    string
	Title     string
	Album     string
	Quality   string
	Path      string
	Size      int64
	TagStatus string
	TagError  string
}

// AlbumName returns the album or "".
func (d Download) AlbumName() string {
	return dbutil.NullStringValue(d.Album)
}

// Created returns when the file was saved.
func (d Download) Created() time.Time {
	return time.Unix(d.CreatedAt, 0)
}

// RecordDownload appends a history row. Recording the same job twice
// updates the first row.
func (m *Manager) RecordDownload(r DownloadRecord) (int64, error) {
	row := Download{
		JobID:     r.JobID,
		TrackID:   r.TrackID,
		Artist:    r.Artist,
		Title:     r.Title,
		Album:     dbutil.NullString(r.Album),
		Quality:   r.Quality,
		Path:      r.Path,
		Size:      r.Size,
		TagStatus: r.TagStatus,
		TagError:  dbutil.NullString(r.TagError),
		CreatedAt: m.now().Unix(),
	}

	_, err := m.db.NamedExec(`
		INSERT INTO download_history (
			job_id, track_id, artist, title, album, quality, path, size, tag_status, tag_error, created_at
		) VALUES (
			:job_id, :track_id, :artist, :title, :album, :quality, :path, :size, :tag_status, :tag_error, :created_at
		)
		ON CONFLICT(job_id) DO UPDATE SET
			path = excluded.path,
			size = excluded.size,
			tag_status = excluded.tag_status,
			tag_error = excluded.tag_error
	`, row)
	if err != nil {
		return 0, err
	}

	var id int64
	err = m.db.Get(&id, `SELECT id FROM download_history WHERE job_id = ?`, r.JobID)
	return id, err
}

// RecentDownloads returns up to limit rows, newest first.
func (m *Manager) RecentDownloads(limit int) ([]Download, error) {
	var rows []Download
	err := m.db.Select(&rows, `
		SELECT * FROM download_history ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	return rows, err
}

// DownloadCount returns how many times a track was saved.
func (m *Manager) DownloadCount(trackID string) (int, error) {
	var n int
	err := m.db.Get(&n, `SELECT COUNT(*) FROM download_history WHERE track_id = ?`, trackID)
	return n, err
}
