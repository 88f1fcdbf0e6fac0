package tape

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/packsweep/internal/ui/style"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
	statusPending   = "pending"
)

// TapeSource is an interface for reading progrock updates.
// Since *progrock.Tape does not implement Read(), we define this interface
// for the caller to provide a valid source (e.g. a channel-backed writer).
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

// MsgTapeUpdate wraps the raw update from progrock.
type MsgTapeUpdate struct {
	Update *progrock.StatusUpdate
}

// MsgTapeEnded is sent when the tape stream has ended.
type MsgTapeEnded struct{}

// WaitForTape returns a Bubble Tea command that reads the next update from
// the tape. It returns MsgTapeUpdate on success or MsgTapeEnded on EOF or
// error.
func WaitForTape(tape TapeSource) tea.Cmd {
	return func() tea.Msg {
		update, err := tape.Read()
		if err != nil {
			if err == io.EOF {
				return MsgTapeEnded{}
			}
			// Treat other errors as end of stream for now
			return MsgTapeEnded{}
		}
		return MsgTapeUpdate{Update: update}
	}
}

// VertexState represents the current state of an archive vertex in the tape.
type VertexState struct {
	ID     string
	Name   string
	Status string // statusRunning, statusCompleted, statusFailed, statusPending
}

type modelStyles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	failed    lipgloss.Style
	pending   lipgloss.Style
}

// Model is the Bubble Tea model for the tape display, managing vertices and
// tape updates.
type Model struct {
	tape     TapeSource
	vertices []VertexState
	width    int
	height   int
	spinner  spinner.Model
	styles   modelStyles
}

// NewModel creates a new tape model with the given tape source.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Yellow)

	return &Model{
		tape:    tape,
		spinner: s,
		styles: modelStyles{
			running:   lipgloss.NewStyle().Foreground(style.Yellow),
			completed: lipgloss.NewStyle().Foreground(style.Green),
			failed:    lipgloss.NewStyle().Foreground(style.Red),
			pending:   lipgloss.NewStyle().Foreground(style.Slate),
		},
	}
}

// Init initializes the model and starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case MsgTapeUpdate:
		return m.handleTapeUpdate(msg)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

// handleKeyMsg handles keyboard input messages.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	return m, nil
}

// handleWindowSizeMsg handles window resize messages.
func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	return m, nil
}

// handleSpinnerTick handles spinner animation tick messages.
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleTapeUpdate handles tape update messages.
func (m *Model) handleTapeUpdate(msg MsgTapeUpdate) (tea.Model, tea.Cmd) {
	m.processVertexUpdates(msg.Update)
	return m, WaitForTape(m.tape)
}

// processVertexUpdates processes vertex updates from the tape.
func (m *Model) processVertexUpdates(update *progrock.StatusUpdate) {
	for _, v := range update.Vertexes {
		m.updateOrAddVertex(v)
	}
}

// updateOrAddVertex updates an existing vertex or adds a new one.
func (m *Model) updateOrAddVertex(v *progrock.Vertex) {
	for i, existing := range m.vertices {
		if existing.ID == v.Id {
			m.updateVertexStatus(i, v)
			return
		}
	}
	// Vertex not found, add it
	m.vertices = append(m.vertices, VertexState{
		ID:     v.Id,
		Name:   v.Name,
		Status: statusRunning,
	})
}

// updateVertexStatus updates the status of an existing vertex.
func (m *Model) updateVertexStatus(index int, v *progrock.Vertex) {
	if v.Completed != nil {
		if v.Error != nil {
			m.vertices[index].Status = statusFailed
		} else {
			m.vertices[index].Status = statusCompleted
		}
	}
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	var s strings.Builder

	// Determine start index to handle overflow
	start := 0
	if len(m.vertices) > m.height && m.height > 0 {
		start = len(m.vertices) - m.height
	}

	for i := start; i < len(m.vertices); i++ {
		v := m.vertices[i]
		var icon string
		var st lipgloss.Style
		switch v.Status {
		case statusRunning:
			icon = m.spinner.View()
			st = m.styles.running
		case statusCompleted:
			icon = style.Check
			st = m.styles.completed
		case statusFailed:
			icon = style.Cross
			st = m.styles.failed
		default:
			icon = style.Dot
			st = m.styles.pending
		}

		line := fmt.Sprintf("%s %s\n", st.Render(icon), v.Name)
		s.WriteString(line)
	}

	return s.String()
}
