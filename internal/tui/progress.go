package tui

import (
	"context"
	"fmt"
	"time"

	"mailsift/internal/export"
	"mailsift/internal/model"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type progressMsg model.ExportProgress

type runDoneMsg struct {
	summary *export.Summary
	err     error
}

// ProgressModel renders a live counter line while an export runs.
type ProgressModel struct {
	spinner spinner.Model
	prog    model.ExportProgress
	start   time.Time

	summary *export.Summary
	err     error
	done    bool
}

func NewProgressModel() ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	return ProgressModel{spinner: s, start: time.Now()}
}

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case progressMsg:
		m.prog = model.ExportProgress(msg)
		return m, nil
	case runDoneMsg:
		m.summary = msg.summary
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ProgressModel) View() string {
	if m.done {
		return ""
	}
	elapsed := time.Since(m.start).Round(time.Second)
	line := fmt.Sprintf("%s %s  listed %d  written %d  skipped %d  redacted %d  files %d  %s",
		m.spinner.View(),
		titleStyle.Render("exporting"),
		m.prog.Listed, m.prog.Written, m.prog.Skipped, m.prog.Redacted, m.prog.Files,
		elapsed)
	return line + "\n" + dimStyle.Render("q: cancel") + "\n"
}

// RunProgress runs the export under a live progress display and returns
// its summary. Quitting the display cancels the export.
func RunProgress(ctx context.Context, opts export.Options) (*export.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel())

	opts.OnProgress = func(pr model.ExportProgress) {
		p.Send(progressMsg(pr))
	}

	done := make(chan runDoneMsg, 1)
	go func() {
		sum, err := export.Run(ctx, opts)
		msg := runDoneMsg{summary: sum, err: err}
		done <- msg
		p.Send(msg)
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("progress display: %w", err)
	}

	// The user may have quit before the run finished; cancel and wait.
	if fm, ok := final.(ProgressModel); ok && !fm.done {
		cancel()
	}
	res := <-done
	return res.summary, res.err
}
