package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/lgi/pkg/batch"
)

const barWidth = 32

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// progressModel - Interactive batch progress
// =============================================================================

type advanceMsg struct{ ok bool }

type finishMsg struct{}

// progressModel is the bubbletea model drawing a batch progress bar.
type progressModel struct {
	title  string
	total  int
	ok     int
	failed int
	start  time.Time
	done   bool
}

func newProgressModel(title string, total int) progressModel {
	return progressModel{title: title, total: total, start: time.Now()}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		if msg.ok {
			m.ok++
		} else {
			m.failed++
		}
	case finishMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	processed := m.ok + m.failed
	frac := 1.0
	if m.total > 0 {
		frac = float64(processed) / float64(m.total)
	}
	full := int(frac * barWidth)

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString(" ")
	b.WriteString(barFullStyle.Render(strings.Repeat("█", full)))
	b.WriteString(barEmptyStyle.Render(strings.Repeat("░", barWidth-full)))
	b.WriteString(" ")
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%d/%d", processed, m.total)))
	if m.failed > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf(" · %d dropped", m.failed)))
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf(" · %s", time.Since(m.start).Round(time.Second))))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Reporters
// =============================================================================

// teaReporter drives a progressModel from batch progress events.
type teaReporter struct {
	ctx     context.Context
	title   string
	program *tea.Program
	exited  chan struct{}
}

func (r *teaReporter) Start(total int) {
	r.program = tea.NewProgram(newProgressModel(r.title, total),
		tea.WithContext(r.ctx),
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	r.exited = make(chan struct{})
	go func() {
		defer close(r.exited)
		if _, err := r.program.Run(); err != nil {
			loggerFromContext(r.ctx).Debug("progress display stopped", "err", err)
		}
	}()
}

func (r *teaReporter) Advance(ok bool) {
	r.program.Send(advanceMsg{ok: ok})
}

func (r *teaReporter) Finish() {
	r.program.Send(finishMsg{})
	<-r.exited
}

// logReporter logs progress every tenth of the batch, for non-interactive
// output.
type logReporter struct {
	logger    *log.Logger
	title     string
	total     int
	processed int
	failed    int
	step      int
}

func (r *logReporter) Start(total int) {
	r.total = total
	r.step = max(total/10, 1)
}

func (r *logReporter) Advance(ok bool) {
	r.processed++
	if !ok {
		r.failed++
	}
	if r.processed%r.step == 0 && r.processed < r.total {
		r.logger.Info(r.title, "processed", r.processed, "total", r.total, "dropped", r.failed)
	}
}

func (r *logReporter) Finish() {}

// newReporter returns an interactive progress bar when stderr is a
// terminal and a log-based reporter otherwise.
func newReporter(ctx context.Context, title string, quiet bool) batch.Reporter {
	if quiet {
		return batch.NopReporter{}
	}
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return &teaReporter{ctx: ctx, title: title}
	}
	return &logReporter{logger: loggerFromContext(ctx), title: title}
}
