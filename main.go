package main

import (
	"fmt"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/app"
	"github.com/llehouerou/tunefetch/internal/config"
	"github.com/llehouerou/tunefetch/internal/errmsg"
	"github.com/llehouerou/tunefetch/internal/icons"
	"github.com/llehouerou/tunefetch/internal/logger"
	"github.com/llehouerou/tunefetch/internal/mpris"
	"github.com/llehouerou/tunefetch/internal/notify"
	"github.com/llehouerou/tunefetch/internal/player"
	"github.com/llehouerou/tunefetch/internal/state"
	"github.com/llehouerou/tunefetch/internal/stderr"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Capture stderr before any C library (ALSA) is initialized
	if err := stderr.Start(); err == nil {
		defer stderr.Stop()
	}

	cfg, err := config.Load()
	if err != nil {
		stderr.WriteOriginal(errmsg.Format(errmsg.OpSettingsLoad, err) + "\n")
		return 1
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.LogFile(),
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}); err != nil {
		stderr.WriteOriginal(fmt.Sprintf("logger: %v\n", err))
	}
	defer logger.Sync()

	icons.Init(cfg.IconStyle())

	stateMgr, err := state.Open()
	if err != nil {
		stderr.WriteOriginal(errmsg.Format(errmsg.OpInitialize, err) + "\n")
		return 1
	}
	// Closing again after a normal quit is a no-op
	defer func() { _ = stateMgr.Close() }()
	stateMgr.SetLogger(logger.Named("state"))

	client := api.NewClient(cfg.BaseURL(), cfg.Timeout(), api.WithLogger(logger.Named("api")))

	deps := app.Deps{
		Client: client,
		Player: player.New(),
		State:  stateMgr,
		Log:    logger.Named("app"),
	}

	if n, err := notify.New(); err != nil {
		logger.Z.Debug("desktop notifications unavailable", zap.Error(err))
	} else {
		deps.Notifier = n
	}

	// The adapter can receive requests before the program runs; they are
	// dropped until the program pointer is set.
	var program atomic.Pointer[tea.Program]
	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(func(c mpris.Command) {
			if p := program.Load(); p != nil {
				p.Send(app.MPRISCommandMsg{Command: c})
			}
		})
		if err != nil {
			logger.Z.Debug("mpris unavailable", zap.Error(err))
		} else {
			defer func() { _ = adapter.Close() }()
			deps.MPRIS = adapter
		}
	}

	m := app.New(cfg, deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	program.Store(p)

	if _, err := p.Run(); err != nil {
		logger.L.Errorw("program exited", "error", err)
		stderr.WriteOriginal(fmt.Sprintf("Error: %v\n", err))
		return 1
	}
	return 0
}
