// Package tui provides a Bubble Tea terminal user interface for showcase.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calbret/showcase/internal/audio"
	"github.com/calbret/showcase/internal/config"
	"github.com/calbret/showcase/internal/github"
	"github.com/calbret/showcase/internal/model"
	"github.com/calbret/showcase/internal/pipeline"
	"github.com/calbret/showcase/internal/search"
	"github.com/calbret/showcase/internal/store"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// maxVisibleLogs bounds the progress log shown while loading.
const maxVisibleLogs = 10

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateBrowse
	StateError
)

// eventLog collects pipeline progress events for polling from Update.
type eventLog struct {
	mu     sync.Mutex
	events []pipeline.ProgressEvent
}

func (l *eventLog) add(e pipeline.ProgressEvent) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *eventLog) drain() []pipeline.ProgressEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.events
	l.events = nil
	return out
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state      State
	queryInput textinput.Model
	spinner    spinner.Model
	settings   *config.Settings
	err        error

	snapshots  *store.SnapshotStore
	aggregator *pipeline.Aggregator
	player     *audio.Player

	results  []model.Project
	selected int

	logs *eventLog
	seen []pipeline.ProgressEvent

	playState audio.State
	playName  string
	playErr   error

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel creates a new TUI model wired to the given settings.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "type to search projects"
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	logs := &eventLog{}
	client := github.NewClient(settings.Owner, settings.Repo, settings.Ref,
		github.WithTimeout(time.Duration(settings.RequestTimeoutSeconds)*time.Second))
	aggregator := pipeline.New(client, pipeline.Options{
		Root:                  settings.ProjectsRoot,
		MaxConcurrentResolves: settings.MaxConcurrentResolves,
		OnProgress:            logs.add,
	})
	backend := audio.NewExecBackend(settings.PlayerCommand, settings.PlayerArgs...)

	return Model{
		state:      StateLoading,
		queryInput: ti,
		spinner:    sp,
		settings:   settings,
		snapshots:  store.NewSnapshotStore(),
		aggregator: aggregator,
		player:     audio.NewPlayer(backend),
		logs:       logs,
		playState:  audio.StateIdle,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Init starts the first aggregation run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.aggregate(), m.tickLogs())
}

// Message types
type (
	// SnapshotMsg is sent when an aggregation run settles.
	SnapshotMsg struct {
		Snapshot *model.Snapshot
		Err      error
	}

	// PlaybackMsg is sent when a play or stop attempt resolves.
	PlaybackMsg struct {
		State audio.State
		Name  string
		Err   error
	}

	// LogTickMsg polls pipeline progress while loading.
	LogTickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateBrowse && m.queryInput.Value() != "" {
				m.queryInput.SetValue("")
				m.refilter()
				return m, nil
			}
			m.cancel()
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.selected < len(m.results)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.state == StateBrowse {
				return m, m.play()
			}

		case "ctrl+s":
			return m, m.stop()

		case "ctrl+r":
			if m.state != StateLoading {
				m.state = StateLoading
				m.err = nil
				m.seen = nil
				return m, tea.Batch(m.aggregate(), m.spinner.Tick, m.tickLogs())
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case LogTickMsg:
		m.seen = append(m.seen, m.logs.drain()...)
		if len(m.seen) > maxVisibleLogs {
			m.seen = m.seen[len(m.seen)-maxVisibleLogs:]
		}
		if m.state == StateLoading {
			cmds = append(cmds, m.tickLogs())
		}

	case SnapshotMsg:
		m.seen = append(m.seen, m.logs.drain()...)
		if msg.Err != nil {
			// The prior snapshot, if any, stays published; only the
			// display state changes.
			m.state = StateError
			m.err = msg.Err
		} else {
			m.snapshots.Publish(msg.Snapshot)
			m.state = StateBrowse
			m.refilter()
		}

	case PlaybackMsg:
		m.playState = msg.State
		m.playName = msg.Name
		m.playErr = msg.Err
	}

	// Update the query input and refilter on change.
	if m.state == StateBrowse {
		before := m.queryInput.Value()
		var cmd tea.Cmd
		m.queryInput, cmd = m.queryInput.Update(msg)
		cmds = append(cmds, cmd)
		if m.queryInput.Value() != before {
			m.refilter()
		}
	}

	return m, tea.Batch(cmds...)
}

// refilter recomputes the visible results from the current snapshot.
func (m *Model) refilter() {
	m.results = search.Rank(m.queryInput.Value(), m.snapshots.Current())
	if m.selected >= len(m.results) {
		m.selected = len(m.results) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// aggregate runs the pipeline and reports the outcome.
func (m Model) aggregate() tea.Cmd {
	aggregator := m.aggregator
	ctx := m.ctx
	return func() tea.Msg {
		snap, err := aggregator.Run(ctx)
		return SnapshotMsg{Snapshot: snap, Err: err}
	}
}

// play starts playback of the selected project's audio track.
func (m Model) play() tea.Cmd {
	if m.selected >= len(m.results) {
		return nil
	}
	project := m.results[m.selected]
	if !project.HasAudio() {
		player := m.player
		return func() tea.Msg {
			return PlaybackMsg{
				State: player.State(),
				Err:   fmt.Errorf("%s has no audio track", project.Name),
			}
		}
	}
	player := m.player
	ctx := m.ctx
	return func() tea.Msg {
		state, err := player.Play(ctx, project.AudioURL)
		return PlaybackMsg{State: state, Name: project.Name, Err: err}
	}
}

// stop ends playback.
func (m Model) stop() tea.Cmd {
	player := m.player
	return func() tea.Msg {
		err := player.Stop()
		return PlaybackMsg{State: player.State(), Err: err}
	}
}

// tickLogs polls collected progress events while loading.
func (m Model) tickLogs() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return LogTickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Showcase"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s/%s", m.settings.Owner, m.settings.Repo)))
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateBrowse:
		b.WriteString(m.viewBrowse())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching projects..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	b.WriteString(m.queryInput.View())
	b.WriteString("\n\n")

	snap := m.snapshots.Current()
	if len(m.results) == 0 {
		if m.queryInput.Value() != "" {
			b.WriteString(dimStyle.Render("  no projects match"))
		} else {
			b.WriteString(dimStyle.Render("  no projects found"))
		}
		b.WriteString("\n")
	}

	for i, p := range m.results {
		b.WriteString(renderProject(p, i == m.selected))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine(snap))

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Aggregation failed:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n")
	}
	if snap := m.snapshots.Current(); snap != nil {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("previous snapshot kept (%d projects); ctrl+r retries", snap.Len())))
		b.WriteString("\n")
	}

	return b.String()
}

// renderProject renders one project to its display line. Pure function
// of the record and the selection flag.
func renderProject(p model.Project, selected bool) string {
	cursor := "  "
	nameStyle := infoStyle
	if selected {
		cursor = "> "
		nameStyle = selectedStyle
	}

	var markers []string
	if p.HasAudio() {
		markers = append(markers, "♪")
	}
	if p.HasIcon() {
		markers = append(markers, "◉")
	}
	if p.HasSource() {
		markers = append(markers, "↗")
	}

	line := cursor + nameStyle.Render(p.Name)
	if len(markers) > 0 {
		line += " " + dimStyle.Render(strings.Join(markers, " "))
	}
	if p.Description != "" {
		desc := p.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		line += "  " + dimStyle.Render(desc)
	}
	return line
}

func (m Model) statusLine(snap *model.Snapshot) string {
	var parts []string

	if snap != nil {
		parts = append(parts, fmt.Sprintf("%d/%d projects", len(m.results), snap.Len()))
		if len(snap.Warnings) > 0 {
			parts = append(parts, warningStyle.Render(fmt.Sprintf("%d skipped", len(snap.Warnings))))
		}
	}

	switch {
	case m.playErr != nil:
		parts = append(parts, errorStyle.Render(fmt.Sprintf("playback: %v", m.playErr)))
	case m.playState == audio.StatePlaying:
		parts = append(parts, successStyle.Render(fmt.Sprintf("playing %s", m.playName)))
	case m.playState != audio.StateIdle:
		parts = append(parts, dimStyle.Render("playback: "+m.playState.String()))
	}

	return dimStyle.Render(strings.Join(parts, "  |  "))
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, e := range m.seen {
		if e.Level == pipeline.LevelVerbose && !m.settings.Verbose {
			continue
		}
		var style lipgloss.Style
		prefix := "•"
		switch e.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + e.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateLoading:
		return "esc: quit"
	case StateBrowse:
		return "type: search • up/down: select • enter: play • ctrl+s: stop • ctrl+r: refresh • esc: clear/quit"
	case StateError:
		return "ctrl+r: retry • esc: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
