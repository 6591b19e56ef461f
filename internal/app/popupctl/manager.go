// internal/app/popupctl/manager.go
package popupctl

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunefetch/internal/ui/confirm"
	"github.com/llehouerou/tunefetch/internal/ui/downloadmodal"
	"github.com/llehouerou/tunefetch/internal/ui/helpbindings"
	"github.com/llehouerou/tunefetch/internal/ui/infopanel"
	"github.com/llehouerou/tunefetch/internal/ui/popup"
)

// Manager manages all modal popups and overlays.
type Manager struct {
	popups   map[Type]popup.Popup
	sizes    map[Type]popup.SizeConfig
	errorMsg string
	width    int
	height   int
}

// New creates a new Manager with initialized components.
func New() *Manager {
	return &Manager{
		popups: make(map[Type]popup.Popup),
		sizes: map[Type]popup.SizeConfig{
			Download: popup.SizeMedium,
			Info:     popup.SizeLarge,
			// All others default to SizeAuto
		},
	}
}

// SetSize updates the dimensions for popup rendering and resizes
// visible popups.
func (p *Manager) SetSize(width, height int) {
	p.width = width
	p.height = height
	for t, pop := range p.popups {
		pop.SetSize(p.contentSize(p.sizes[t]))
	}
}

// IsVisible returns true if the specified popup type is visible.
func (p *Manager) IsVisible(t Type) bool {
	switch t {
	case None:
		return false
	case Error:
		return p.errorMsg != ""
	case Help, Confirm, Download, Info:
		return p.popups[t] != nil
	}
	return false
}

// ActivePopup returns which popup is currently active (highest priority).
func (p *Manager) ActivePopup() Type {
	for _, t := range Priority {
		if p.IsVisible(t) {
			return t
		}
	}
	return None
}

// Show displays a popup of the given type.
func (p *Manager) Show(t Type, pop popup.Popup) tea.Cmd {
	pop.SetSize(p.contentSize(p.sizes[t]))
	p.popups[t] = pop
	return pop.Init()
}

// Hide hides the specified popup type.
func (p *Manager) Hide(t Type) {
	switch t {
	case None:
		// Nothing to hide
	case Error:
		p.errorMsg = ""
	case Help, Confirm, Download, Info:
		delete(p.popups, t)
	}
}

// Get retrieves a popup for type assertion when needed.
func (p *Manager) Get(t Type) popup.Popup {
	return p.popups[t]
}

func (p *Manager) contentSize(size popup.SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		return p.width * size.WidthPct / 100, p.height * size.HeightPct / 100
	}
	// Auto-fit: give full screen size, popup decides
	return p.width, p.height
}

// --- Show Methods (convenience wrappers) ---

// ShowHelp displays the help popup with the given contexts.
func (p *Manager) ShowHelp(contexts []string) tea.Cmd {
	help := helpbindings.New()
	help.SetContexts(contexts)
	return p.Show(Help, &help)
}

// ShowConfirm displays a yes/no dialog. context comes back in confirm.Result.
func (p *Manager) ShowConfirm(title, message string, context any) tea.Cmd {
	c := confirm.New()
	c.Show(title, message, context, p.width, p.height)
	return p.Show(Confirm, &c)
}

// ShowError displays an error message popup.
func (p *Manager) ShowError(msg string) {
	p.errorMsg = msg
}

// ShowDownload opens the download modal, or refreshes it when already open.
func (p *Manager) ShowDownload(s downloadmodal.State) tea.Cmd {
	if dl := p.Download(); dl != nil {
		dl.SetState(s)
		return nil
	}
	dl := downloadmodal.New()
	dl.SetState(s)
	return p.Show(Download, dl)
}

// UpdateDownload refreshes the download modal if it is open.
func (p *Manager) UpdateDownload(s downloadmodal.State) {
	if dl := p.Download(); dl != nil {
		dl.SetState(s)
	}
}

// ShowInfo displays the info panel.
func (p *Manager) ShowInfo(kind infopanel.Kind, title, body, backup, timestamp string) tea.Cmd {
	info := infopanel.New()
	info.Show(kind, title, body, backup, timestamp)
	return p.Show(Info, info)
}

// --- Accessors ---

// ErrorMsg returns the current error message.
func (p *Manager) ErrorMsg() string {
	return p.errorMsg
}

// Download returns the download modal for direct access.
func (p *Manager) Download() *downloadmodal.Model {
	if pop := p.popups[Download]; pop != nil {
		if dl, ok := pop.(*downloadmodal.Model); ok {
			return dl
		}
	}
	return nil
}

// Info returns the info panel for direct access.
func (p *Manager) Info() *infopanel.Model {
	if pop := p.popups[Info]; pop != nil {
		if info, ok := pop.(*infopanel.Model); ok {
			return info
		}
	}
	return nil
}

// --- Key Handling ---

// HandleKey routes key events to the active popup.
// Returns (handled, cmd) where handled is true if a popup consumed the key.
func (p *Manager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Error popup: dismiss on any key
	if p.errorMsg != "" {
		p.errorMsg = ""
		return true, nil
	}

	active := p.ActivePopup()
	if active == None {
		return false, nil
	}

	pop := p.popups[active]
	if pop == nil {
		return false, nil
	}

	updated, cmd := pop.Update(msg)
	p.popups[active] = updated
	return true, cmd
}

// --- Rendering ---

// RenderOverlay renders active popup(s) on top of the base view.
func (p *Manager) RenderOverlay(base string) string {
	for _, t := range RenderOrder {
		if !p.IsVisible(t) {
			continue
		}

		if t == Error {
			base = popup.Compose(base, p.renderError(), p.width, p.height)
			continue
		}

		pop := p.popups[t]
		if pop == nil {
			continue
		}

		rendered := popup.RenderBordered(pop.View(), p.width, p.height, p.sizes[t])
		base = popup.Compose(base, rendered, p.width, p.height)
	}
	return base
}

func (p *Manager) renderError() string {
	pop := popup.New()
	pop.Title = "Error"
	pop.Content = p.errorMsg
	pop.Footer = "Press any key to dismiss"
	return pop.Render(p.width, p.height)
}
