package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/lex/pkg/app"
	"tableflip.dev/lex/pkg/dict"
	"tableflip.dev/lex/pkg/leitner"
	"tableflip.dev/lex/pkg/session"
	"tableflip.dev/lex/pkg/store"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// Model contains UI state. The session owns the search and review semantics;
// the model maps keys to session events and renders the view model.
type Model struct {
	svc  *app.Service
	ctx  context.Context
	sess *session.Session
	vm   session.ViewModel

	defView viewport.Model

	status      string
	saveOnGrade bool

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service. The session starts empty
// until the initial load command delivers the dictionaries and the deck.
func New(svc *app.Service) Model {
	deck, _ := leitner.NewDeck()
	sess := session.New(nil, deck)

	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(12),
	)
	vp.MouseWheelEnabled = true

	saveOnGrade := true
	if svc != nil && svc.Config != nil {
		saveOnGrade = svc.Config.SaveOnGrade()
	}

	m := Model{
		svc:         svc,
		ctx:         context.Background(),
		sess:        sess,
		defView:     vp,
		status:      "type to search, ←/→ dictionary, ` bookmark, alt+l review, alt+m layout, esc quit",
		saveOnGrade: saveOnGrade,
	}
	m.vm = sess.View()
	return m
}

// Init loads initial data and starts the deck watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSession(), startWatchCmd(m.ctx, m.svc))
}

func (m *Model) loadSession() tea.Cmd {
	svc := m.svc
	if svc == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		stores, err := svc.Stores(ctx)
		if err != nil {
			return errMsg{err}
		}
		deck, err := svc.Deck(ctx)
		if err != nil {
			return errMsg{err}
		}
		return sessionLoadedMsg{stores: stores, deck: deck}
	}
}

// messages
type errMsg struct{ err error }
type sessionLoadedMsg struct {
	stores []*dict.Store
	deck   *leitner.Deck
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct{ event store.Event }
type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil || svc.Persistence == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Persistence.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case sessionLoadedMsg:
		prevMode := m.sess.Mode()
		m.sess = session.New(msg.stores, msg.deck)
		if prevMode == session.ModeCompact {
			m.vm = m.sess.Handle(session.ToggleMode{Kind: session.ToggleLayout})
		} else {
			m.vm = m.sess.View()
		}
		m.syncDefinition()
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "ERR: watch " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		if m.sess.Mode() != session.ModeLeitner {
			cmds = append(cmds, m.loadSession())
		}
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		if cmd := startWatchCmd(m.ctx, m.svc); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case tea.KeyPressMsg:
		m.handleKey(msg, &cmds)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.saveDeck(cmds)
		*cmds = append(*cmds, tea.Quit)
		return
	case "alt+l":
		m.vm = m.sess.Handle(session.ToggleMode{Kind: session.ToggleReview})
		m.syncDefinition()
		return
	case "alt+m":
		m.vm = m.sess.Handle(session.ToggleMode{Kind: session.ToggleLayout})
		return
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.defView, cmd = m.defView.Update(msg)
		*cmds = append(*cmds, cmd)
		return
	}

	if m.vm.Mode == session.ModeLeitner {
		m.handleReviewKey(msg, cmds)
		return
	}
	m.handleSearchKey(msg, cmds)
}

func (m *Model) handleReviewKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.vm = m.sess.Handle(session.MoveCursor{Delta: -1})
	case "down", "j":
		m.vm = m.sess.Handle(session.MoveCursor{Delta: 1})
	case "shift+up":
		m.vm = m.sess.Handle(session.MoveCursor{Delta: -10})
	case "shift+down":
		m.vm = m.sess.Handle(session.MoveCursor{Delta: 10})
	case "enter", "space", " ":
		m.vm = m.sess.Handle(session.ShowDefinition{})
	case "y":
		m.applyGrade(true, cmds)
	case "n":
		m.applyGrade(false, cmds)
	}
	m.syncDefinition()
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "up":
		m.vm = m.sess.Handle(session.MoveCursor{Delta: -1})
	case "down":
		m.vm = m.sess.Handle(session.MoveCursor{Delta: 1})
	case "shift+up":
		m.vm = m.sess.Handle(session.MoveCursor{Delta: -10})
	case "shift+down":
		m.vm = m.sess.Handle(session.MoveCursor{Delta: 10})
	case "left":
		m.vm = m.sess.Handle(session.SwitchStore{Direction: -1})
	case "right":
		m.vm = m.sess.Handle(session.SwitchStore{Direction: 1})
	case "backspace":
		m.vm = m.sess.Handle(session.Backspace{})
	case "`":
		m.applyBookmark(cmds)
	case "ctrl+y":
		if word, def, ok := selectedMatch(m.vm); ok {
			if err := clipboardWrite(word + "\n" + def); err != nil {
				m.status = "ERR: clipboard " + err.Error()
			} else {
				m.status = fmt.Sprintf("Copied %s", word)
			}
		}
	default:
		if msg.Mod != 0 {
			return
		}
		for _, r := range msg.Text {
			m.vm = m.sess.Handle(session.CharTyped{Rune: r})
		}
	}
	m.syncDefinition()
}

func (m *Model) applyGrade(correct bool, cmds *[]tea.Cmd) {
	c := m.sess.Deck().Current()
	if c == nil {
		return
	}
	m.vm = m.sess.Handle(session.Grade{Correct: correct})
	m.status = fmt.Sprintf("Graded %s into box %d", c.Word, c.Box)
	if m.saveOnGrade && m.svc != nil {
		if err := m.svc.SaveCard(m.ctx, c); err != nil {
			*cmds = append(*cmds, func() tea.Msg { return errMsg{err} })
		}
	}
}

func (m *Model) applyBookmark(cmds *[]tea.Cmd) {
	word, _, ok := selectedMatch(m.vm)
	if !ok {
		return
	}
	m.vm = m.sess.Handle(session.Bookmark{})
	m.status = fmt.Sprintf("Bookmarked %s", word)
	if m.svc == nil {
		return
	}
	if c, ok := m.sess.Deck().Card(word); ok {
		if err := m.svc.SaveCard(m.ctx, c); err != nil {
			*cmds = append(*cmds, func() tea.Msg { return errMsg{err} })
		}
	}
}

func (m *Model) saveDeck(cmds *[]tea.Cmd) {
	m.stopWatch()
	if m.svc == nil {
		return
	}
	if err := m.svc.SaveDeck(m.ctx, m.sess.Deck()); err != nil {
		*cmds = append(*cmds, func() tea.Msg { return errMsg{err} })
	}
}

func selectedMatch(vm session.ViewModel) (word, definition string, ok bool) {
	for _, match := range vm.Matches {
		if match.Selected {
			return match.Word, match.Definition, true
		}
	}
	return "", "", false
}

// syncDefinition loads the definition pane with whatever the mode says is
// on screen.
func (m *Model) syncDefinition() {
	switch m.vm.Mode {
	case session.ModeLeitner:
		if m.vm.Due != nil && m.vm.ShowDefinition {
			m.defView.SetContent(m.vm.Due.Definition)
		} else {
			m.defView.SetContent("")
		}
	default:
		if _, def, ok := selectedMatch(m.vm); ok {
			m.defView.SetContent(def)
		} else {
			m.defView.SetContent("")
		}
	}
	m.defView.SetYOffset(0)
}

// View renders the active layout plus a status footer.
func (m Model) View() string {
	var body string
	switch m.vm.Mode {
	case session.ModeLeitner:
		body = m.reviewView()
	case session.ModeCompact:
		body = m.compactView()
	default:
		body = m.defaultView()
	}

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render(fmt.Sprintf("[%s] %s", m.vm.Mode, m.status))
	return body + "\n\n" + footer
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	boxStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func (m Model) defaultView() string {
	left := m.storesPane()
	middle := m.matchesPane()
	right := m.definitionPane()
	gap := lipgloss.NewStyle().Padding(0, 1).Render
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap(" "), middle, gap(" "), right)
}

func (m Model) compactView() string {
	lines := []string{m.queryLine()}
	lines = append(lines, m.matchLines(m.listHeight())...)
	return strings.Join(lines, "\n")
}

func (m Model) storesPane() string {
	lines := []string{titleStyle.Render("Dictionaries")}
	for _, name := range m.vm.Stores {
		if name == m.vm.ActiveStore {
			lines = append(lines, selectedStyle.Render("» "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	if len(m.vm.Stores) == 0 {
		lines = append(lines, faintStyle.Render(" none"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) matchesPane() string {
	lines := []string{m.queryLine()}
	lines = append(lines, m.matchLines(m.listHeight())...)
	return strings.Join(lines, "\n")
}

func (m Model) definitionPane() string {
	_, _, ok := selectedMatch(m.vm)
	if !ok {
		return faintStyle.Render("no match")
	}
	return m.defView.View()
}

func (m Model) queryLine() string {
	q := fmt.Sprintf("> %s", m.vm.Query)
	count := faintStyle.Render(fmt.Sprintf("  %d matches", len(m.vm.Matches)))
	return q + count
}

// matchLines returns a window of the match list that keeps the selection
// visible, centered when the list is long enough.
func (m Model) matchLines(height int) []string {
	matches := m.vm.Matches
	if len(matches) == 0 {
		if m.vm.Query != "" {
			return []string{faintStyle.Render(" no matches")}
		}
		return nil
	}

	sel := 0
	for i, match := range matches {
		if match.Selected {
			sel = i
			break
		}
	}
	start := 0
	if len(matches) > height {
		start = sel - height/2
		if start < 0 {
			start = 0
		}
		if start > len(matches)-height {
			start = len(matches) - height
		}
	}
	end := start + height
	if end > len(matches) {
		end = len(matches)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if matches[i].Selected {
			lines = append(lines, selectedStyle.Render("→ "+matches[i].Word))
		} else {
			lines = append(lines, "  "+matches[i].Word)
		}
	}
	return lines
}

func (m Model) reviewView() string {
	lines := []string{titleStyle.Render("Review")}
	lines = append(lines, faintStyle.Render(
		fmt.Sprintf("%d due of %d cards", m.vm.DueCount, m.vm.DeckSize)))
	lines = append(lines, "")

	if m.vm.Due == nil {
		lines = append(lines, faintStyle.Render("nothing due, come back later"))
		return strings.Join(lines, "\n")
	}

	due := m.vm.Due
	lines = append(lines, selectedStyle.Render(due.Word)+"  "+boxStyle.Render(leitner.BoxSymbol(due.Box)))
	if rel := leitner.RelativeDue(due.Due, time.Now()); rel != "" {
		lines = append(lines, faintStyle.Render("due "+rel))
	}
	lines = append(lines, "")
	if m.vm.ShowDefinition {
		lines = append(lines, m.defView.View())
		lines = append(lines, "")
		lines = append(lines, faintStyle.Render("y remembered · n forgot"))
	} else {
		lines = append(lines, faintStyle.Render("enter/space reveal · y remembered · n forgot"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) listHeight() int {
	h := m.termHeight - 6
	if h < 5 {
		h = 5
	}
	return h
}

// applySizes recalculates pane sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	w := m.termWidth / 2
	if w < 30 {
		w = 30
	}
	m.defView.SetWidth(w)
	m.defView.SetHeight(m.listHeight())
}
