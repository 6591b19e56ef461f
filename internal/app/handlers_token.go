// internal/app/handlers_token.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/errmsg"
	"github.com/llehouerou/tunefetch/internal/notify"
	"github.com/llehouerou/tunefetch/internal/tokenstatus"
	"github.com/llehouerou/tunefetch/internal/ui/infopanel"
)

func (m Model) handleTokenMessage(msg TokenMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TokenPollTickMsg:
		return m, tea.Batch(
			TokenInfoCmd(m.ctx, m.Client, false),
			TokenPollTickCmd(m.cfg.TokenPollInterval()),
		)
	case RenewalPollTickMsg:
		return m, tea.Batch(
			RenewalStatusCmd(m.ctx, m.Client, false),
			RenewalPollTickCmd(m.cfg.RenewalPollInterval()),
		)
	case TokenInfoMsg:
		return m.handleTokenInfo(msg)
	case RenewalStatusMsg:
		return m.handleRenewalStatus(msg)
	case RenewalForceMsg:
		return m.handleRenewalForce(msg)
	}
	return m, nil
}

func (m Model) handleTokenInfo(msg TokenInfoMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Debug(errmsg.Format(errmsg.OpTokenInfo, msg.Err))
	}
	m.Token = tokenstatus.Derive(msg.Resp, msg.Err)

	switch m.Token.Level {
	case tokenstatus.LevelWarning, tokenstatus.LevelExpired:
		// One desktop notification per degradation
		if !m.notifiedWarned {
			m.notifiedWarned = true
			m.desktopNotify(notify.TokenWarning(m.Token.Text, m.Token.Urgent, m.notifyTimeout()))
		}
	case tokenstatus.LevelValid:
		m.notifiedWarned = false
	}

	if !msg.ShowDetails {
		return m, nil
	}
	return m, m.Popups.ShowInfo(infopanel.KindTokenDetails, "Token details",
		tokenstatus.Details(msg.Resp, msg.Err, msg.At), "", "")
}

func (m Model) handleRenewalStatus(msg RenewalStatusMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		op := errmsg.OpRenewalStatus
		if msg.Manual {
			op = errmsg.OpRenewalCheck
		}
		m.log.Debug(errmsg.Format(op, msg.Err))
	}
	m.Renewal = tokenstatus.DeriveRenewal(msg.Resp, msg.Err)
	if !msg.Manual {
		return m, nil
	}
	if !m.Renewal.Known {
		return m, m.fail(m.Renewal.Text)
	}
	return m, m.info(m.Renewal.Text)
}

func (m Model) handleRenewalForce(msg RenewalForceMsg) (tea.Model, tea.Cmd) {
	out := tokenstatus.DeriveForce(msg.Resp, msg.Err)
	if !out.OK {
		text := out.Message
		if msg.Err != nil {
			text = errmsg.Format(errmsg.OpRenewalForce, msg.Err)
		}
		m.log.Warn("forced renewal failed", zap.String("reason", out.Message))
		return m, m.fail(text)
	}

	m.log.Info("credentials renewed", zap.Bool("instructions", out.HasInstructions()))
	if out.HasInstructions() {
		return m, m.Popups.ShowInfo(infopanel.KindInstructions, "Renewal instructions",
			out.Instructions, out.BackupData, out.Timestamp)
	}
	return m, tea.Batch(
		m.Popups.ShowInfo(infopanel.KindCredentials, "New credentials",
			tokenstatus.CredentialsReport(out.Credentials), "", ""),
		TokenInfoCmd(m.ctx, m.Client, false),
		RenewalStatusCmd(m.ctx, m.Client, false),
	)
}

func (m Model) actTokenDetails() (Model, tea.Cmd) {
	return m, TokenInfoCmd(m.ctx, m.Client, true)
}

func (m Model) actRenewalCheck() (Model, tea.Cmd) {
	return m, tea.Batch(
		m.info("Checking renewal status..."),
		RenewalStatusCmd(m.ctx, m.Client, true),
	)
}

func (m Model) actRenewalForce() (Model, tea.Cmd) {
	return m, m.Popups.ShowConfirm("Force renewal",
		"Request new credentials from the backend now?", forceRenewal{})
}

// confirmForceRenewal runs once the user accepts the dialog.
func (m Model) confirmForceRenewal() (Model, tea.Cmd) {
	m.log.Info("forced renewal requested", zap.Time("at", time.Now()))
	return m, tea.Batch(
		m.info("Renewing credentials..."),
		RenewalForceCmd(m.ctx, m.Client),
	)
}
