package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// seriesProgress shows a progress bar while a tournament series runs. On
// non-terminals it stays silent; the series summary still prints at the end.
type seriesProgress struct {
	total   int
	program *tea.Program
	done    chan struct{}
}

type progressMsg int

type progressDoneMsg struct{}

type progressModel struct {
	bar       progress.Model
	completed int
	total     int
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.completed = int(msg)
		return m, nil
	case progressDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := msg.Width - 20
		if width > 4 {
			m.bar.Width = width
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	fraction := 0.0
	if m.total > 0 {
		fraction = float64(m.completed) / float64(m.total)
	}
	return fmt.Sprintf("%s %d/%d tournaments\n", m.bar.ViewAs(fraction), m.completed, m.total)
}

func newSeriesProgress(total int) *seriesProgress {
	return &seriesProgress{total: total, done: make(chan struct{})}
}

// start launches the progress display. Single runs and piped output skip it.
func (p *seriesProgress) start() {
	if p.total < 2 || !isTerminal() {
		return
	}
	model := progressModel{
		bar:   progress.New(progress.WithDefaultGradient()),
		total: p.total,
	}
	p.program = tea.NewProgram(model)
	go func() {
		defer close(p.done)
		// Errors here only cost the progress display, never the series.
		_, _ = p.program.Run()
	}()
}

func (p *seriesProgress) advance(completed int) {
	if p.program != nil {
		p.program.Send(progressMsg(completed))
	}
}

func (p *seriesProgress) finish() {
	if p.program != nil {
		p.program.Send(progressDoneMsg{})
		<-p.done
	}
}
