package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/memhost"
	"github.com/matzehuels/stackview/pkg/pipeline"
	"github.com/matzehuels/stackview/pkg/stack"
)

const (
	playFrame    = 50 * time.Millisecond
	playDuration = 400 * time.Millisecond
	playHistory  = 5
)

// playCommand creates the interactive play command.
func (c *CLI) playCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play [file]",
		Short: "Toggle items and configuration of a stack interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), args[0])
		},
	}
}

func runPlay(ctx context.Context, path string) error {
	doc, _, err := pipeline.Load(ctx, path)
	if err != nil {
		return err
	}
	c, host, err := pipeline.Build(doc, nil)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(newPlayModel(ctx, c, host), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// playModel - Interactive stack editor
// =============================================================================

type frameMsg time.Time

type playModel struct {
	ctx      context.Context
	c        *stack.Container
	host     *memhost.Host
	cursor   int
	animated bool
	history  *playHistoryLog
}

// playHistoryLog is shared by all copies of the model, so completions that
// run during a later frame still land in the view.
type playHistoryLog struct {
	lines []string
}

func newPlayModel(ctx context.Context, c *stack.Container, host *memhost.Host) playModel {
	return playModel{ctx: ctx, c: c, host: host, animated: true, history: &playHistoryLog{}}
}

func tick() tea.Cmd {
	return tea.Tick(playFrame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m playModel) Init() tea.Cmd {
	return tick()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.host.Advance(playFrame)
		m.c.Step()
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.c.Len()-1 {
				m.cursor++
			}
		case " ", "enter":
			m.toggle()
		case "m":
			m.animated = !m.animated
		case "x":
			cfg := m.c.Configuration()
			cfg.Axis = cfg.Axis.Transverse()
			if cfg.Alignment.IsBaseline() && cfg.Axis == stack.Vertical {
				cfg.Alignment = stack.AlignFill
			}
			m.configure(cfg)
		case "l":
			cfg := m.c.Configuration()
			cfg.Alignment = nextAlignment(cfg.Alignment, cfg.Axis)
			m.configure(cfg)
		case "d":
			cfg := m.c.Configuration()
			cfg.Distribution = (cfg.Distribution + 1) % (stack.DistributeEqualCentering + 1)
			m.configure(cfg)
		case "+", "=":
			cfg := m.c.Configuration()
			cfg.Spacing += 2
			m.configure(cfg)
		case "-":
			cfg := m.c.Configuration()
			cfg.Spacing = max(0, cfg.Spacing-2)
			m.configure(cfg)
		}
	}
	return m, nil
}

// toggle flips the logical visibility of the selected item.
func (m *playModel) toggle() {
	if m.c.Len() == 0 {
		return
	}
	items := m.c.Items()
	hidden := !items[m.cursor].Tiers.Logical
	id := items[m.cursor].ID

	if !m.animated {
		m.report(m.c.SetHidden(m.ctx, m.cursor, hidden))
		return
	}
	index := m.cursor
	err := m.c.Animate(m.ctx, stack.AnimationOptions{Duration: playDuration}, func(ctx context.Context) error {
		return m.c.SetHidden(ctx, index, hidden)
	}, func(finished bool) {
		word := "finished"
		if !finished {
			word = "cancelled"
		}
		m.note(fmt.Sprintf("%s %s: %s", verb(hidden), id, word))
	})
	m.report(err)
}

func (m *playModel) configure(cfg stack.Config) {
	m.report(m.c.SetConfiguration(cfg))
}

func (m *playModel) report(err error) {
	if err != nil {
		m.note("error: " + err.Error())
	}
}

func (m *playModel) note(s string) {
	h := m.history
	h.lines = append(h.lines, s)
	if len(h.lines) > playHistory {
		h.lines = h.lines[len(h.lines)-playHistory:]
	}
}

func verb(hidden bool) string {
	if hidden {
		return "hide"
	}
	return "show"
}

// nextAlignment cycles alignments, skipping baselines on a vertical axis.
func nextAlignment(a stack.Alignment, axis stack.Axis) stack.Alignment {
	for {
		a = (a + 1) % (stack.AlignLastBaseline + 1)
		if !a.IsBaseline() || axis == stack.Horizontal {
			return a
		}
	}
}

func (m playModel) View() string {
	var b strings.Builder
	cfg := m.c.Configuration()
	snap := pipeline.Capture(m.c)

	b.WriteString(StyleTitle.Render(string(m.c.ID())))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %s · %s · spacing %g · %d constraints",
		cfg.Axis, cfg.Alignment, cfg.Distribution, cfg.Spacing, len(snap.Constraints))))
	b.WriteString("\n\n")

	rows := make([]string, len(snap.Items))
	for i, it := range snap.Items {
		cursor := "  "
		if i == m.cursor {
			cursor = StyleHighlight.Render("▸ ")
		}
		rows[i] = fmt.Sprintf("%s%-16s %s", cursor, it.ID, StyleDim.Render(it.State))
	}
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n\n")
	b.WriteString(preview(snap, cfg.Axis))
	b.WriteString("\n\n")

	for _, h := range m.history.lines {
		b.WriteString(StyleDim.Render(h))
		b.WriteString("\n")
	}

	mode := "immediate"
	if m.animated {
		mode = "animated"
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("↑/↓ select  space toggle (%s)  m mode  x axis  l alignment  d distribution  +/- spacing  q quit", mode)))
	return b.String()
}

var (
	previewBox       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorCyan).Padding(0, 1)
	previewFadingBox = previewBox.BorderForeground(colorDim).Foreground(colorDim)
)

// preview draws the presented items along the axis. Items whose layout is
// already collapsed but which are still presented are drawn faded.
func preview(snap *pipeline.Snapshot, axis stack.Axis) string {
	var boxes []string
	for _, it := range snap.Items {
		if it.Presentation {
			continue
		}
		style := previewBox
		if it.Hidden {
			style = previewFadingBox
		}
		boxes = append(boxes, style.Render(string(it.ID)))
	}
	if len(boxes) == 0 {
		return StyleDim.Render("(empty)")
	}
	if axis == stack.Vertical {
		return lipgloss.JoinVertical(lipgloss.Left, boxes...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}
