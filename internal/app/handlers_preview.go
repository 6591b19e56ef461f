// internal/app/handlers_preview.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/errmsg"
	"github.com/llehouerou/tunefetch/internal/mpris"
	"github.com/llehouerou/tunefetch/internal/notify"
	"github.com/llehouerou/tunefetch/internal/preview"
	"github.com/llehouerou/tunefetch/internal/results"
	"github.com/llehouerou/tunefetch/internal/ui/playerbar"
)

func (m Model) actTogglePreview() (Model, tea.Cmd) {
	item, _, ok := m.selectedResult()
	if !ok {
		return m, nil
	}
	return m.togglePreview(item)
}

func (m Model) togglePreview(item results.Item) (Model, tea.Cmd) {
	if !item.Previewable {
		return m, m.info(item.InertReason)
	}

	act := m.Preview.Toggle(item.Index)
	switch act.Kind {
	case preview.ActionNone:
		return m, nil
	case preview.ActionStop:
		m.Player.Stop()
		m.syncPreview()
		return m, nil
	case preview.ActionLoad:
		m.Player.Stop()
		m.previewItem = item
		m.syncPreview()
		return m, ResolvePreviewCmd(m.ctx, m.Client, act.Ticket, api.TrackID(item.TrackID))
	}
	return m, nil
}

func (m Model) actStopPreview() (Model, tea.Cmd) {
	m.stopPreview()
	return m, nil
}

// stopPreview ends any preview and hides the mini player.
func (m *Model) stopPreview() {
	if m.Preview.State() == preview.Stopped {
		return
	}
	m.Preview.Stop()
	m.Player.Stop()
	m.syncPreview()
}

// syncPreview pushes the session state to the list, the layout and MPRIS.
func (m *Model) syncPreview() {
	m.Results.SetPreview(m.Preview.Index(), m.Preview.State())
	m.ResizeComponents()
	m.publishStatus()
}

func (m Model) handlePreviewMessage(msg PreviewMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PreviewResolvedMsg:
		return m.handlePreviewResolved(msg)
	case PreviewLoadedMsg:
		return m.handlePreviewLoaded(msg)
	case PreviewAutoStopMsg:
		if m.Preview.End(msg.Gen) {
			m.Player.Stop()
			m.syncPreview()
			return m, m.info(preview.MsgFinished)
		}
		return m, nil
	case PreviewCooldownMsg:
		if m.Preview.Cooldown(msg.Gen) {
			m.syncPreview()
		}
		return m, nil
	case PreviewTickMsg:
		if msg.Gen == m.Preview.Gen() && m.Preview.State() == preview.Playing {
			return m, PreviewTickCmd(msg.Gen)
		}
		return m, nil
	case PreviewFinishedMsg:
		if m.Preview.End(msg.Gen) {
			m.Player.Stop()
			m.syncPreview()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handlePreviewResolved(msg PreviewResolvedMsg) (tea.Model, tea.Cmd) {
	err := msg.Err
	var url string
	if err == nil {
		if err = msg.Resp.Err(); err == nil {
			url = msg.Resp.PreviewURL
		}
	}

	if !m.Preview.Resolved(msg.Ticket, url, err) {
		return m, nil
	}
	if err != nil {
		return m, m.previewFailed(errmsg.OpPreviewLoad, err)
	}
	return m, LoadPreviewCmd(m.ctx, m.Client, msg.Ticket, url)
}

func (m Model) handlePreviewLoaded(msg PreviewLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if !m.Preview.Fail(msg.Ticket, msg.Err) {
			return m, nil
		}
		return m, m.previewFailed(errmsg.OpPreviewLoad, msg.Err)
	}

	// A superseded ticket's audio is dropped without touching the player
	if !m.Preview.Started(msg.Ticket) {
		m.log.Debug("stale preview dropped", zap.Uint64("gen", msg.Ticket.Gen))
		return m, nil
	}
	if err := m.Player.Play(msg.Source); err != nil {
		m.Preview.Fail(msg.Ticket, err)
		return m, m.previewFailed(errmsg.OpPreviewPlay, err)
	}

	m.syncPreview()
	return m, tea.Batch(
		PreviewAutoStopCmd(msg.Ticket.Gen),
		PreviewTickCmd(msg.Ticket.Gen),
		WatchPreviewFinished(m.Player, msg.Ticket.Gen),
	)
}

// previewFailed reports the error category and schedules the cooldown.
func (m *Model) previewFailed(op errmsg.Op, err error) tea.Cmd {
	text := preview.Message(err)
	m.log.Warn(errmsg.FormatWith(op, m.previewItem.Title, err), zap.String("category", preview.Classify(err).String()))
	m.desktopNotify(notify.PreviewFailed(m.previewItem.Title, text, m.notifyTimeout()))
	m.syncPreview()
	return tea.Batch(m.fail(text), PreviewCooldownCmd(m.Preview.Gen()))
}

// playerBarState builds the mini player view model.
func (m Model) playerBarState() playerbar.State {
	s := playerbar.State{
		Phase:  m.Preview.State(),
		Title:  m.previewItem.Title,
		Artist: m.previewItem.Artist,
		Volume: m.cfg.PreviewVolume(),
	}
	switch s.Phase {
	case preview.Playing:
		s.Position = m.Player.Position()
	case preview.Error:
		s.ErrText = preview.Message(m.Preview.Err())
	}
	return s
}

// publishStatus pushes the preview state to MPRIS.
func (m Model) publishStatus() {
	if m.MPRIS == nil {
		return
	}
	st := mpris.Status{Playing: m.Preview.State() == preview.Playing}
	if m.Preview.State().IsActive() {
		it := m.previewItem
		st.Track = &mpris.Track{
			ID:     it.TrackID,
			Title:  it.Title,
			Artist: it.Artist,
			Album:  it.Album,
			Cover:  it.Cover,
			Length: preview.MaxDuration,
		}
		st.Position = m.Player.Position()
	}
	m.MPRIS.SetStatus(st)
}

func (m Model) handleMPRISCommand(msg MPRISCommandMsg) (tea.Model, tea.Cmd) {
	active := m.Preview.State().IsActive()
	switch msg.Command {
	case mpris.CommandPause, mpris.CommandStop:
		m.stopPreview()
	case mpris.CommandPlayPause:
		if active {
			m.stopPreview()
			return m, nil
		}
		return m.actTogglePreview()
	case mpris.CommandPlay:
		if !active {
			return m.actTogglePreview()
		}
	}
	return m, nil
}
