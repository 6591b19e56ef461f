// internal/app/app.go
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/app/popupctl"
	"github.com/llehouerou/tunefetch/internal/config"
	"github.com/llehouerou/tunefetch/internal/download"
	"github.com/llehouerou/tunefetch/internal/keymap"
	"github.com/llehouerou/tunefetch/internal/notify"
	"github.com/llehouerou/tunefetch/internal/player"
	"github.com/llehouerou/tunefetch/internal/preview"
	"github.com/llehouerou/tunefetch/internal/quality"
	"github.com/llehouerou/tunefetch/internal/results"
	"github.com/llehouerou/tunefetch/internal/search"
	"github.com/llehouerou/tunefetch/internal/state"
	"github.com/llehouerou/tunefetch/internal/tags"
	"github.com/llehouerou/tunefetch/internal/tokenstatus"
	"github.com/llehouerou/tunefetch/internal/ui/jobbar"
	"github.com/llehouerou/tunefetch/internal/ui/resultlist"
	"github.com/llehouerou/tunefetch/internal/ui/searchbar"
)

// Deps are the services the model talks to. Optional fields may be nil.
type Deps struct {
	Client    *api.Client
	Player    player.Interface
	State     state.Interface
	Notifier  notify.Notifier // optional
	MPRIS     StatusPublisher // optional
	Presenter Presenter       // optional, defaults to a logging presenter
	Clipboard Clipboard       // optional, defaults to the system clipboard
	Log       *zap.Logger     // optional
}

// Model is the root application model containing all state.
type Model struct {
	cfg *config.Config
	log *zap.Logger
	ctx context.Context
	// cancel aborts in-flight requests and saves on shutdown.
	cancel context.CancelFunc

	Client    *api.Client
	Player    player.Interface
	StateMgr  state.Interface
	Notifier  notify.Notifier
	MPRIS     StatusPublisher
	Presenter Presenter
	Clipboard Clipboard
	saver     *download.Saver
	tagger    *tags.Filler

	Search    *search.Session
	Downloads *download.Flow
	Preview   *preview.Session
	Quality   quality.Code

	// previewItem is the result the current preview was started for;
	// the list may be replaced while it plays.
	previewItem results.Item

	SearchBar searchbar.Model
	Results   resultlist.Model
	Popups    *popupctl.Manager
	Jobs      jobbar.State

	Token          tokenstatus.Status
	Renewal        tokenstatus.Renewal
	notifiedWarned bool // a token warning went to the desktop already

	Notifications      []Notification
	nextNotificationID int64

	resolver      *keymap.Resolver
	inputResolver *keymap.Resolver

	Width  int
	Height int
}

// New creates the application model. Saved settings override the
// configured tab and quality.
func New(cfg *config.Config, deps Deps) Model {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	presenter := deps.Presenter
	if presenter == nil {
		presenter = logPresenter{log: log.Named("presenter")}
	}
	clip := deps.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}

	tab := search.ParseTab(cfg.DefaultTab())
	q := cfg.Quality()
	if s, err := deps.State.GetSettings(); err != nil {
		log.Warn("load settings", zap.Error(err))
	} else if s != nil {
		if s.Tab != "" {
			tab = search.ParseTab(s.Tab)
		}
		if s.Quality != "" {
			q = quality.Parse(s.Quality)
		}
	}

	deps.Player.SetVolume(cfg.PreviewVolume())

	bar := searchbar.New(tab, cfg.LyricsMinWords())
	bar.Focus()

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		cfg:       cfg,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
		Client:    deps.Client,
		Player:    deps.Player,
		StateMgr:  deps.State,
		Notifier:  deps.Notifier,
		MPRIS:     deps.MPRIS,
		Presenter: presenter,
		Clipboard: clip,
		saver:     download.NewSaver(cfg.DownloadsDir(), deps.Client, log.Named("saver")),
		tagger:    tags.NewFiller(deps.Client, log.Named("tags")),

		Search:    search.New(tab, cfg.LyricsMinWords()),
		Downloads: download.NewFlow(deps.Client),
		Preview:   preview.New(),
		Quality:   q,

		SearchBar: bar,
		Results:   resultlist.New(),
		Popups:    popupctl.New(),
		Token:     tokenstatus.Checking,

		resolver:      keymap.NewResolver(keymap.ForContexts("global", "results")),
		inputResolver: keymap.NewResolver(keymap.ByContext("input")),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		TokenInfoCmd(m.ctx, m.Client, false),
		RenewalStatusCmd(m.ctx, m.Client, false),
		TokenPollTickCmd(m.cfg.TokenPollInterval()),
		RenewalPollTickCmd(m.cfg.RenewalPollInterval()),
		WatchStderr(),
	)
}

// Shutdown aborts background work and releases the audio device and the
// state database.
func (m Model) Shutdown() {
	m.cancel()
	m.Player.Stop()
	if err := m.StateMgr.Close(); err != nil {
		m.log.Warn("close state", zap.Error(err))
	}
}
