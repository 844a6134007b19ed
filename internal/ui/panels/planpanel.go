package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mitosis-ai/mitosis/internal/plan"
	"github.com/mitosis-ai/mitosis/internal/ui/border"
	"github.com/mitosis-ai/mitosis/internal/ui/styles"
	"github.com/mitosis-ai/mitosis/internal/ui/text"
)

// PlanPanel lists the agent's plan steps with completion state. The
// active step animates while the agent works on it.
type PlanPanel struct {
	width   int
	height  int
	steps   []plan.Step
	spin    spinner.Model
	focused bool
	offset  int

	generating bool
	genStart   time.Time
}

func NewPlanPanel() PlanPanel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.StatusRunning)
	return PlanPanel{spin: sp}
}

func (p PlanPanel) Init() tea.Cmd {
	return p.spin.Tick
}

func (p PlanPanel) Update(msg tea.Msg) (PlanPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return p, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if p.offset < p.maxOffset() {
				p.offset++
			}
			return p, nil
		case "k", "up":
			if p.offset > 0 {
				p.offset--
			}
			return p, nil
		}
	}
	return p, nil
}

func (p PlanPanel) View() string {
	title := "[1] " + styles.TitleStyle.Render("Plan")
	if len(p.steps) > 0 {
		pct := float64(plan.CompletedCount(p.steps)) / float64(len(p.steps)) * 100
		title += " " + styles.TextSecondaryStyle.Render(
			plan.Progress(p.steps)+" · "+text.FormatPercent(pct),
		)
	}

	var keybinds []border.Keybind
	if p.focused && len(p.steps) > 0 {
		keybinds = []border.Keybind{
			{Key: "j", Label: "/k scroll"},
		}
	}

	return border.RenderPanel(title, p.content(), keybinds, p.width, p.height, p.focused)
}

func (p PlanPanel) content() string {
	if p.generating {
		elapsed := text.FormatElapsed(time.Since(p.genStart))
		return "\n  " + p.spin.View() + " " +
			styles.TextPrimaryStyle.Render("Generando plan... ") +
			styles.TextDimStyle.Render(elapsed)
	}
	if len(p.steps) == 0 {
		return "\n  " + styles.TextDimStyle.Render("Sin plan todavía")
	}

	var b strings.Builder
	for i, s := range p.steps {
		if i < p.offset {
			continue
		}
		var icon string
		style := styles.TextPrimaryStyle
		switch {
		case s.Completed:
			icon = styles.StatusSuccessStyle.Render("✓")
		case s.Active:
			icon = p.spin.View()
		default:
			icon = styles.TextDimStyle.Render("○")
			style = styles.TextDimStyle
		}
		line := fmt.Sprintf("%s %d. %s", icon, i+1, style.Render(s.Title))
		if s.ElapsedTime > 0 {
			line += styles.TextDimStyle.Render(" (" + text.FormatSeconds(s.ElapsedTime) + ")")
		}
		b.WriteString(" " + line + "\n")
		if s.Active && s.Tool != "" {
			b.WriteString("      " + styles.TextSecondaryStyle.Render("→ "+s.Tool) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (p *PlanPanel) SetSteps(steps []plan.Step) {
	p.steps = steps
	p.generating = false
	if p.offset > p.maxOffset() {
		p.offset = p.maxOffset()
	}
}

// SetGenerating switches the panel to the plan-generation spinner.
func (p *PlanPanel) SetGenerating(start time.Time) {
	p.generating = true
	p.genStart = start
	p.steps = nil
	p.offset = 0
}

func (p *PlanPanel) Reset() {
	p.steps = nil
	p.generating = false
	p.offset = 0
}

func (p *PlanPanel) SetSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *PlanPanel) SetFocused(focused bool) {
	p.focused = focused
}

func (p PlanPanel) maxOffset() int {
	inner := p.height - 2
	if inner < 1 {
		inner = 1
	}
	max := len(p.steps) - inner
	if max < 0 {
		max = 0
	}
	return max
}
