package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/goldminer/internal/games/goldminer"
	"github.com/vovakirdan/goldminer/internal/progress"
	"github.com/vovakirdan/goldminer/internal/shop"
	"github.com/vovakirdan/goldminer/internal/storage"
)

// purchaseMsg carries the outcome of a purchase run off the UI goroutine.
type purchaseMsg struct {
	receipt shop.Receipt
	err     error
}

// ShopKeyMap defines the key bindings for the shop overlay.
type ShopKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Buy   key.Binding
	Close key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Close}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "buy one"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "b", "s", "q"),
			key.WithHelp("esc", "back to the mine"),
		),
	}
}

// ShopModel is the overlay that sells power-ups during a session.
type ShopModel struct {
	shop    *shop.Shop
	session *progress.Session
	items   []goldminer.PowerUpInfo
	table   table.Model
	help    help.Model
	keys    ShopKeyMap
	width   int
	height  int

	busy    bool
	message string
	failed  bool
	closed  bool
}

// NewShopModel creates the overlay for a running session.
func NewShopModel(sh *shop.Shop, sess *progress.Session, width, height int) ShopModel {
	m := ShopModel{
		shop:    sh,
		session: sess,
		items:   sh.List(),
		help:    help.New(),
		keys:    DefaultShopKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateRows()
	return m
}

func (m *ShopModel) createTable() table.Model {
	descWidth := max(10, m.width-4-4-14-7-7-10)
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Item", Width: 14},
		{Title: "Price", Width: 7},
		{Title: "Owned", Width: 7},
		{Title: "Effect", Width: descWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(len(m.items)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateRows refreshes owned counts from the live engine.
func (m *ShopModel) updateRows() {
	eng := m.session.Engine
	rows := make([]table.Row, len(m.items))
	for i, item := range m.items {
		rows[i] = table.Row{
			string(item.Icon),
			item.Name,
			fmt.Sprintf("%d", item.Price),
			fmt.Sprintf("%d", eng.PowerUpCount(item.Type)),
			item.Description,
		}
	}
	m.table.SetRows(rows)
}

// Resize adapts the overlay to a new terminal size.
func (m *ShopModel) Resize(width, height int) {
	m.width, m.height = width, height
	cursor := m.table.Cursor()
	m.table = m.createTable()
	m.updateRows()
	m.table.SetCursor(cursor)
	m.help.Width = width
}

// Closed reports whether the player left the shop.
func (m ShopModel) Closed() bool {
	return m.closed
}

// Update handles messages for the overlay.
func (m ShopModel) Update(msg tea.Msg) (ShopModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Close):
			if !m.busy {
				m.closed = true
			}
			return m, nil

		case key.Matches(msg, m.keys.Buy):
			if m.busy || len(m.items) == 0 {
				return m, nil
			}
			m.busy = true
			m.message = ""
			return m, m.buyCmd(m.items[m.table.Cursor()])
		}

	case purchaseMsg:
		m.busy = false
		m.failed = msg.err != nil
		switch {
		case errors.Is(msg.err, storage.ErrInsufficientCoins):
			m.message = "Not enough coins"
		case msg.err != nil:
			m.message = "Purchase failed: " + msg.err.Error()
		default:
			m.message = fmt.Sprintf("Bought %s for %d coins", msg.receipt.Item.Name, msg.receipt.Cost)
		}
		m.updateRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ShopModel) buyCmd(item goldminer.PowerUpInfo) tea.Cmd {
	sh, sess := m.shop, m.session
	return func() tea.Msg {
		r, err := sh.BuyLive(sess.Player, item.ID, 1, sess.Engine, sess.Saver)
		return purchaseMsg{receipt: r, err: err}
	}
}

// View renders the overlay.
func (m ShopModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("POWER-UP SHOP", m.width)))
	b.WriteString("\n\n")

	coins := m.session.Engine.State().Coins
	balanceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	b.WriteString(centerText(balanceStyle.Render(fmt.Sprintf("Coins: %d", coins)), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.table.View())))
	b.WriteString("\n\n")

	msgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	if m.failed {
		msgStyle = msgStyle.Foreground(lipgloss.Color("196"))
	}
	switch {
	case m.busy:
		b.WriteString(centerText("Purchasing...", m.width))
	case m.message != "":
		b.WriteString(centerText(msgStyle.Render(m.message), m.width))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}
