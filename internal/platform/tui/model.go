package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/goldminer/internal/config"
	"github.com/vovakirdan/goldminer/internal/core"
	"github.com/vovakirdan/goldminer/internal/games/goldminer"
	"github.com/vovakirdan/goldminer/internal/progress"
	"github.com/vovakirdan/goldminer/internal/shop"
	"github.com/vovakirdan/goldminer/internal/storage"
)

// footerRows is the number of rows below the scene reserved for help and notices.
const footerRows = 1

// noticeTTL is how long a notice replaces the help line.
const noticeTTL = 3 * time.Second

// PlayModel is the Bubble Tea model for one Gold Miner session.
type PlayModel struct {
	session *progress.Session
	shop    *shop.Shop // Nil when playing without storage
	screen  *core.Screen
	scene   *ScreenRenderer
	config  core.RuntimeConfig
	keys    PlayKeyMap
	help    help.Model
	width   int
	height  int

	overlay       *ShopModel
	pausedForShop bool

	notice   string
	noticeAt time.Time
	quitting bool
}

// NewPlayModel creates a play model. screen must be the surface the session's
// engine was created with.
func NewPlayModel(sess *progress.Session, sh *shop.Shop, screen *core.Screen, cfg core.RuntimeConfig) PlayModel {
	h := help.New()
	h.Width = cfg.ScreenW

	return PlayModel{
		session: sess,
		shop:    sh,
		screen:  screen,
		scene:   defaultScreenRenderer,
		config:  cfg,
		keys:    DefaultPlayKeyMap(),
		help:    h,
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
}

// WithRenderer draws the scene with r, the renderer of the output the model
// is shown on.
func (m PlayModel) WithRenderer(r *lipgloss.Renderer) PlayModel {
	m.scene = NewScreenRenderer(r)
	return m
}

// Init starts the tick loop and the autosave timer.
func (m PlayModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), m.nextAutosave())
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.overlay != nil {
			return m.updateShop(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-footerRows))
		m.help.Width = msg.Width
		if m.overlay != nil {
			m.overlay.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case TickMsg:
		m.session.Engine.Tick()
		return m, tickCmd(m.config.TickRate)

	case AutosaveMsg:
		return m, tea.Batch(m.flushCmd(), m.nextAutosave())

	case savedMsg:
		if msg.err != nil {
			m.setNotice("Autosave failed, progress will be retried")
		}
		return m, nil

	case purchaseMsg:
		if m.overlay != nil {
			return m.updateShop(msg)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input while the scene is showing.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	eng := m.session.Engine
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		//nolint:errcheck // Close logs its own failures; the session is over either way
		m.session.Close()
		return m, tea.Quit

	case core.ActionDrop:
		eng.DropHook()

	case core.ActionPause:
		if eng.State().Paused {
			eng.Resume()
		} else {
			eng.Pause()
		}

	case core.ActionShop:
		if m.shop == nil {
			m.setNotice("Shop needs a scores database")
			return m, nil
		}
		if !eng.State().Paused {
			eng.Pause()
			m.pausedForShop = true
		}
		overlay := NewShopModel(m.shop, m.session, m.width, m.height)
		m.overlay = &overlay
	}

	if slot, ok := action.PowerUpSlot(); ok {
		t := goldminer.PowerUpType(slot)
		if !eng.UsePowerUp(t) {
			m.setNotice(fmt.Sprintf("No %s left, press s to visit the shop", t))
		}
	}

	return m, nil
}

// updateShop routes messages to the shop overlay and closes it when done.
func (m PlayModel) updateShop(msg tea.Msg) (tea.Model, tea.Cmd) {
	overlay, cmd := m.overlay.Update(msg)
	if overlay.Closed() {
		m.overlay = nil
		if m.pausedForShop {
			m.session.Engine.Resume()
			m.pausedForShop = false
		}
		return m, cmd
	}
	m.overlay = &overlay
	return m, cmd
}

func (m PlayModel) nextAutosave() tea.Cmd {
	if m.session.Saver == nil {
		return nil
	}
	return autosaveCmd(m.session.Saver.Interval())
}

// flushCmd saves progress off the UI goroutine.
func (m PlayModel) flushCmd() tea.Cmd {
	saver := m.session.Saver
	if saver == nil {
		return nil
	}
	return func() tea.Msg {
		return savedMsg{err: saver.Flush()}
	}
}

func (m *PlayModel) setNotice(text string) {
	m.notice = text
	m.noticeAt = time.Now()
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	if m.overlay != nil {
		return m.overlay.View()
	}

	m.session.Engine.Draw()
	return m.scene.Render(m.screen) + "\n" + m.footer()
}

func (m PlayModel) footer() string {
	if m.notice != "" && time.Since(m.noticeAt) < noticeTTL {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.notice)
	}
	if m.help.ShowAll {
		// Full help does not fit the single footer row; show it compact.
		return m.help.ShortHelpView(m.keys.FullHelp()[1])
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
}

// Quitting reports whether the player ended the session.
func (m PlayModel) Quitting() bool {
	return m.quitting
}

// engineOptions turns runtime settings into engine options.
func engineOptions(cfg core.RuntimeConfig) []goldminer.Option {
	opts := []goldminer.Option{goldminer.WithFrameRate(cfg.TickRate)}
	if cfg.Seed != 0 {
		opts = append(opts, goldminer.WithSeed(uint64(cfg.Seed)))
	}
	return opts
}

// NewSession opens a session for player together with its shop and play model.
// store may be nil to play without persistence.
func NewSession(store *storage.Store, game config.GoldMinerConfig, cfg core.RuntimeConfig, player string, logger *log.Logger) (PlayModel, *progress.Session, error) {
	screen := core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-footerRows))

	sess, err := progress.Open(store, player, screen, game, logger, engineOptions(cfg)...)
	if err != nil {
		return PlayModel{}, nil, err
	}

	var sh *shop.Shop
	if store != nil {
		sh = shop.New(store, game.PowerUps.Prices, logger)
	}
	return NewPlayModel(sess, sh, screen, cfg), sess, nil
}

// Run plays one session in the local terminal and records the result.
func Run(store *storage.Store, game config.GoldMinerConfig, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model, sess, err := NewSession(store, game, cfg, player, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, runErr := p.Run()
	return errors.Join(runErr, sess.Close())
}
