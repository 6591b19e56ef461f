// internal/app/handlers_ui.go
package app

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/app/popupctl"
	"github.com/llehouerou/tunefetch/internal/errmsg"
	"github.com/llehouerou/tunefetch/internal/state"
	"github.com/llehouerou/tunefetch/internal/ui/action"
	"github.com/llehouerou/tunefetch/internal/ui/confirm"
	"github.com/llehouerou/tunefetch/internal/ui/downloadmodal"
	"github.com/llehouerou/tunefetch/internal/ui/infopanel"
)

// handleUIAction routes actions emitted by popups.
func (m Model) handleUIAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch msg.Source {
	case "confirm":
		m.Popups.Hide(popupctl.Confirm)
		if r, ok := msg.Action.(confirm.Result); ok {
			return m.handleConfirmResult(r)
		}
	case "helpbindings":
		m.Popups.Hide(popupctl.Help)
	case "downloadmodal":
		return m.handleDownloadModalAction(msg.Action)
	case "infopanel":
		return m.handleInfoPanelAction(msg.Action)
	}
	return m, nil
}

func (m Model) handleConfirmResult(r confirm.Result) (tea.Model, tea.Cmd) {
	if !r.Confirmed {
		return m, nil
	}
	switch r.Context.(type) {
	case forceRenewal:
		return m.confirmForceRenewal()
	}
	return m, nil
}

func (m Model) handleDownloadModalAction(a action.Action) (tea.Model, tea.Cmd) {
	switch a := a.(type) {
	case downloadmodal.Close:
		m.closeDownload()
	case downloadmodal.CopyLink:
		if err := m.copyToClipboard(a.URL); err != nil {
			return m, m.fail(errmsg.Format(errmsg.OpClipboardCopy, err))
		}
		return m, m.info("Download link copied")
	}
	return m, nil
}

func (m Model) handleInfoPanelAction(a action.Action) (tea.Model, tea.Cmd) {
	switch a := a.(type) {
	case infopanel.Close:
		m.Popups.Hide(popupctl.Info)
	case infopanel.Copy:
		if err := m.copyToClipboard(a.Text); err != nil {
			m.infoNote(errmsg.Format(errmsg.OpClipboardCopy, err))
			return m, nil
		}
		m.infoNote("Copied to clipboard")
	case infopanel.SaveBackup:
		id, err := m.StateMgr.SaveBackup(a.Data)
		switch {
		case errors.Is(err, state.ErrInvalidBackup):
			m.infoNote("Backup data is not valid JSON")
		case err != nil:
			m.log.Warn(errmsg.Format(errmsg.OpBackupSave, err))
			m.infoNote(errmsg.Format(errmsg.OpBackupSave, err))
		default:
			m.log.Info("credential backup saved", zap.Int64("id", id), zap.String("timestamp", a.Timestamp))
			m.infoNote("Backup saved")
		}
	}
	return m, nil
}

// infoNote sets the footer note of the info panel, if it is still open.
func (m Model) infoNote(note string) {
	if info := m.Popups.Info(); info != nil {
		info.SetNote(note)
	}
}

func (m Model) copyToClipboard(text string) error {
	if m.Clipboard == nil {
		return errors.New("clipboard unavailable")
	}
	return m.Clipboard.WriteAll(text)
}

func (m Model) actCopyResult() (Model, tea.Cmd) {
	item, _, ok := m.selectedResult()
	if !ok {
		return m, nil
	}
	text := item.Title
	if item.Artist != "" {
		text = item.Artist + " - " + item.Title
	}
	if err := m.copyToClipboard(text); err != nil {
		return m, m.fail(errmsg.Format(errmsg.OpClipboardCopy, err))
	}
	return m, m.info("Copied: " + text)
}

func (m Model) actHelp() (Model, tea.Cmd) {
	return m, m.Popups.ShowHelp([]string{"global", "results", "input", "instructions"})
}

func (m Model) actQuit() (Model, tea.Cmd) {
	m.Shutdown()
	return m, tea.Quit
}

func (m Model) actCycleQuality() (Model, tea.Cmd) {
	m.Quality = m.Quality.Next()
	m.saveSettings()
	return m, m.info("Quality: " + m.Quality.Label())
}

func (m Model) actShowDownloads() (Model, tea.Cmd) {
	recent, err := m.StateMgr.RecentDownloads(historyLimit)
	if err != nil {
		return m, m.fail(errmsg.Format(errmsg.OpHistoryLoad, err))
	}
	return m, m.Popups.ShowInfo(infopanel.KindHistory, "Download history", formatHistory(recent), "", "")
}

// formatHistory renders one line per saved file, newest first.
func formatHistory(recent []state.Download) string {
	if len(recent) == 0 {
		return "No downloads yet"
	}
	var b strings.Builder
	for i, d := range recent {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s - %s", d.Artist, d.Title)
		if album := d.AlbumName(); album != "" {
			fmt.Fprintf(&b, " [%s]", album)
		}
		fmt.Fprintf(&b, "\n  %s, %s, %s", d.Quality, humanize.Bytes(uint64(max(d.Size, 0))), humanize.Time(d.Created()))
		if d.TagStatus != "" {
			fmt.Fprintf(&b, ", tags %s", d.TagStatus)
		}
	}
	return b.String()
}
