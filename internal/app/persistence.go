// internal/app/persistence.go
package app

import (
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/download"
	"github.com/llehouerou/tunefetch/internal/errmsg"
	"github.com/llehouerou/tunefetch/internal/state"
	"github.com/llehouerou/tunefetch/internal/tags"
)

// historyLimit is how many downloads the history panel lists.
const historyLimit = 50

// saveSettings persists the tab and quality (debounced by the state manager).
func (m Model) saveSettings() {
	m.StateMgr.SaveSettings(state.Settings{
		Tab:     string(m.Search.Tab()),
		Quality: string(m.Quality),
	})
}

// recordDownload appends the saved file to the history.
func (m Model) recordDownload(job download.Job, path string, size int64, status tags.Status, tagErr error) {
	rec := state.DownloadRecord{
		JobID:     job.ID,
		TrackID:   string(job.Result.ID),
		Artist:    job.Result.Artist,
		Title:     job.Result.Title,
		Album:     job.Result.Album,
		Quality:   string(job.Quality),
		Path:      path,
		Size:      size,
		TagStatus: string(status),
	}
	if tagErr != nil {
		rec.TagError = tagErr.Error()
	}
	if _, err := m.StateMgr.RecordDownload(rec); err != nil {
		m.log.Warn(errmsg.Format(errmsg.OpHistorySave, err), zap.String("path", path))
	}
}
