package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"imgcopy/internal/domain"
	"imgcopy/internal/presentation"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseCopying Phase = iota
	PhaseListing
	PhaseDone
	PhaseError
)

type (
	CopyOutcomeMsg struct {
		Outcome domain.CopyOutcome
		Current int
		Total   int
	}
	// ListingMsg ends a successful run.
	ListingMsg struct {
		Report domain.CopyReport
	}
	// ErrorMsg ends a run whose listing (or planning) failed. Outcomes that
	// were already received stay on screen.
	ErrorMsg struct {
		Err error
	}
	tickMsg time.Time
)

// StartFunc launches the copy. It should run the copier in a goroutine and
// report back through CopyOutcomeMsg, ListingMsg and ErrorMsg.
type StartFunc func() tea.Cmd

type Config struct {
	SourceDir string
	TargetDir string
	Total     int
	Verbose   bool
	Start     StartFunc
	// Cancel is called when the user quits before the run has finished.
	Cancel func()
}

type Model struct {
	config   Config
	Phase    Phase
	spinner  spinner.Model
	progress progress.Model
	outcomes []domain.CopyOutcome
	current  int
	total    int
	Report   domain.CopyReport
	Err      error
	Quitting bool
	width    int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseCopying,
		spinner:  s,
		progress: p,
		total:    cfg.Total,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, tickCmd()}
	if m.config.Start != nil {
		cmds = append(cmds, m.config.Start())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			if m.running() && m.config.Cancel != nil {
				m.config.Cancel()
			}
			return m, tea.Quit
		case "enter":
			if !m.running() {
				return m, tea.Quit
			}
		}

	case CopyOutcomeMsg:
		m.outcomes = append(m.outcomes, msg.Outcome)
		m.current = msg.Current
		m.total = msg.Total
		if m.current >= m.total {
			m.Phase = PhaseListing
		}
		return m, nil

	case ListingMsg:
		m.Report = msg.Report
		m.Phase = PhaseDone
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.running() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.running() {
			var cmds []tea.Cmd
			if m.total > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.current)/float64(m.total)))
			}
			cmds = append(cmds, tickCmd())
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func (m Model) running() bool {
	return m.Phase == PhaseCopying || m.Phase == PhaseListing
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderOutcomes())

	switch m.Phase {
	case PhaseCopying:
		b.WriteString("\n")
		b.WriteString(m.renderProgress())
	case PhaseListing:
		b.WriteString(fmt.Sprintf("\n%s Reading destination directory...\n", m.spinner.View()))
	case PhaseDone:
		b.WriteString("\n")
		b.WriteString(m.renderListing())
		if m.config.Verbose {
			b.WriteString("\n")
			b.WriteString(dimStyle.Render(presentation.SummaryLine(m.Report)))
			b.WriteString("\n")
		}
	case PhaseError:
		b.WriteString(m.renderError())
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("imgcopy"),
		subtitleStyle.Render(fmt.Sprintf("Copying %d files", m.total)),
		"",
		dimStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, shortenPath(m.config.SourceDir))),
		dimStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, shortenPath(m.config.TargetDir))),
	)
}

func (m Model) renderOutcomes() string {
	var b strings.Builder
	for _, o := range m.outcomes {
		if o.Ok() {
			b.WriteString(fmt.Sprintf("  %s Successfully copied: %s", successStyle.Render(iconSuccess), fileNameStyle.Render(o.Item.Name)))
			if o.Replaced {
				b.WriteString(" " + overrideStyle.Render(iconOverride+" replaced"))
			}
			if o.TakenAt != nil && m.config.Verbose {
				b.WriteString(" " + dimStyle.Render(o.TakenAt.Format("2006-01-02 15:04")))
			}
		} else {
			b.WriteString(fmt.Sprintf("  %s Error copying %s: %v", errorStyle.Render(iconError), fileNameStyle.Render(o.Item.Name), o.Err))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderProgress() string {
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}
	return fmt.Sprintf("  %s Copying...\n\n  %s\n  %s %s\n",
		m.spinner.View(),
		m.progress.ViewAs(percent),
		countStyle.Render(fmt.Sprintf("%d/%d files", m.current, m.total)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	)
}

func (m Model) renderListing() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(presentation.ListingHeader))
	b.WriteString("\n")
	if len(m.Report.Listing) == 0 {
		b.WriteString(dimStyle.Render("  (empty)"))
		b.WriteString("\n")
	}
	for _, entry := range m.Report.Listing {
		b.WriteString(fmt.Sprintf("  %s %s\n", iconArrow, entry))
	}
	return b.String()
}

func (m Model) renderError() string {
	msg := errorStyle.Render(fmt.Sprintf("%s Error: %v", iconError, m.Err))
	return errorBoxStyle.Render(msg)
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseCopying, PhaseListing:
		help = "Press q to abort"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
