// internal/app/handlers_download.go
package app

import (
	"context"
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/app/popupctl"
	"github.com/llehouerou/tunefetch/internal/download"
	"github.com/llehouerou/tunefetch/internal/errmsg"
	"github.com/llehouerou/tunefetch/internal/notify"
	"github.com/llehouerou/tunefetch/internal/results"
	"github.com/llehouerou/tunefetch/internal/tags"
	"github.com/llehouerou/tunefetch/internal/ui/downloadmodal"
	"github.com/llehouerou/tunefetch/internal/ui/jobbar"
)

// selectedResult returns the item under the cursor and the backend
// result it was rendered from.
func (m Model) selectedResult() (results.Item, api.Result, bool) {
	item, ok := m.Results.Selected()
	if !ok {
		return results.Item{}, api.Result{}, false
	}
	all := m.Search.Results()
	if item.Index < 0 || item.Index >= len(all) {
		return results.Item{}, api.Result{}, false
	}
	return item, all[item.Index], true
}

func (m Model) actDownload() (Model, tea.Cmd) {
	item, r, ok := m.selectedResult()
	if !ok {
		return m, nil
	}
	if !item.Downloadable {
		return m, m.info(item.InertReason)
	}

	gen := m.Downloads.Open(r, m.Quality)
	m.Presenter.ModalOpened(string(r.ID))
	m.log.Info("download opened",
		zap.String("track_id", string(r.ID)),
		zap.String("quality", string(m.Quality)),
	)
	return m, tea.Batch(
		m.Popups.ShowDownload(downloadmodal.FromFlow(m.Downloads)),
		DownloadAdvanceCmd(gen),
	)
}

// closeDownload hides the modal; responses still in flight become stale.
func (m *Model) closeDownload() {
	wasOpen := m.Downloads.State().IsOpen()
	m.Downloads.Close()
	m.Popups.Hide(popupctl.Download)
	if wasOpen {
		m.Presenter.ModalClosed()
	}
}

func (m Model) handleDownloadMessage(msg DownloadMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DownloadAdvanceMsg:
		return m.handleDownloadAdvance(msg)
	case DownloadResolvedMsg:
		return m.handleDownloadResolved(msg)
	case DownloadAutoCloseMsg:
		if m.Downloads.AutoClose(msg.Gen) {
			m.Popups.Hide(popupctl.Download)
			m.Presenter.ModalClosed()
		}
		return m, nil
	case SaveEventMsg:
		return m.handleSaveEvent(msg)
	case TagsFilledMsg:
		if msg.Err != nil {
			m.log.Warn(errmsg.Format(errmsg.OpDownloadTags, msg.Err), zap.String("path", msg.Path))
		}
		return m, m.finishSave(msg.Job, msg.Path, msg.Size, msg.Status, msg.Err)
	}
	return m, nil
}

func (m Model) handleDownloadAdvance(msg DownloadAdvanceMsg) (tea.Model, tea.Cmd) {
	if !m.Downloads.Advance(msg.Gen) {
		return m, nil
	}
	m.Popups.UpdateDownload(downloadmodal.FromFlow(m.Downloads))
	r := m.Downloads.Result()
	return m, ResolveDownloadCmd(m.ctx, m.Client, msg.Gen, r.ID, string(m.Downloads.Quality()))
}

func (m Model) handleDownloadResolved(msg DownloadResolvedMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.Downloads.Gen() {
		m.log.Debug("stale download response dropped", zap.Uint64("gen", msg.Gen))
		return m, nil
	}

	ready := m.Downloads.Resolve(msg.Gen, msg.Resp, msg.Err)
	m.Popups.UpdateDownload(downloadmodal.FromFlow(m.Downloads))
	if !ready {
		if m.Downloads.State() == download.StateError {
			err := msg.Err
			if err == nil && msg.Resp != nil {
				err = msg.Resp.Err()
			}
			m.log.Warn(errmsg.Format(errmsg.OpDownloadLink, err))
			m.desktopNotify(notify.DownloadFailed(m.Downloads.Title(), m.Downloads.Text(), m.notifyTimeout()))
		}
		return m, nil
	}

	job := download.NewJob(m.Downloads.ProxyURL(), m.Downloads.Filename(), m.Downloads.Result(), m.Downloads.Quality())
	ch := m.saver.Start(m.ctx, job)
	m.Jobs.Update(jobbar.Job{ID: job.ID, Label: job.Filename})
	m.ResizeComponents()

	return m, tea.Batch(
		m.info(download.MsgStarted),
		WaitForSave(job, ch),
		DownloadAutoCloseCmd(msg.Gen),
	)
}

func (m Model) handleSaveEvent(msg SaveEventMsg) (tea.Model, tea.Cmd) {
	ev := msg.Event
	if !ev.Done {
		m.Jobs.Update(jobbar.Job{
			ID:      ev.JobID,
			Label:   msg.Job.Filename,
			Written: ev.Written,
			Total:   max(ev.Total, 0),
		})
		return m, WaitForSave(msg.Job, msg.ch)
	}

	m.Jobs.Remove(ev.JobID)
	m.ResizeComponents()

	if ev.Err != nil {
		if errors.Is(ev.Err, context.Canceled) {
			return m, nil
		}
		text := errmsg.Format(errmsg.OpDownloadSave, ev.Err)
		m.log.Warn(text, zap.String("job", ev.JobID))
		m.desktopNotify(notify.DownloadFailed(msg.Job.Result.Title, ev.Err.Error(), m.notifyTimeout()))
		return m, m.fail(text)
	}

	if !m.cfg.TagFillEnabled() {
		return m, m.finishSave(msg.Job, ev.Path, ev.Written, tags.StatusSkipped, nil)
	}
	return m, FillTagsCmd(m.ctx, m.tagger, msg.Job, ev.Path, ev.Written)
}

// finishSave records a saved file and tells the user.
func (m *Model) finishSave(job download.Job, path string, size int64, status tags.Status, tagErr error) tea.Cmd {
	m.recordDownload(job, path, size, status, tagErr)
	m.log.Info("download saved",
		zap.String("path", path),
		zap.Int64("size", size),
		zap.String("tags", string(status)),
	)
	m.desktopNotify(notify.DownloadSaved(job.Result.Artist, job.Result.Title, size, m.notifyTimeout()))
	return m.info("Saved " + filepath.Base(path))
}
