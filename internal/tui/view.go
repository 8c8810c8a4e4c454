package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fdgo/internal/calculation"
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/internal/tui/components"
	"github.com/rgehrsitz/fdgo/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(tuistyles.BorderStyle.Render("⠋ " + m.loadingMessage))
	}

	if m.err != nil {
		return m.renderApp(tuistyles.ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress q to quit.", m.err.Error())))
	}

	var content string
	switch m.currentScene {
	case ScenePreview:
		content = m.renderPreview()
	case SceneClosure:
		content = m.renderClosure()
	case SceneCompare:
		content = m.renderCompare()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	title := tuistyles.TitleStyle.Render("fdgo · Fixed Deposit Preview")
	breadcrumb := tuistyles.SubtitleStyle.Render(m.currentScene.String())
	if m.settings != nil {
		breadcrumb = tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s · %s interest · penalty %s%%",
			m.currentScene.String(), m.settings.InterestType, m.settings.PenaltyPercent.String()))
	}

	body := lipgloss.NewStyle().Height(max(0, m.height-4)).Render(content)

	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		breadcrumb,
		body,
		m.renderStatusBar(),
	))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("p", "preview"),
		formatShortcut("x", "closure"),
		formatShortcut("c", "compare"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return tuistyles.StatusBarStyle.Width(max(0, m.width-2)).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

// renderPreview renders the opening form next to the live maturity figures
func (m Model) renderPreview() string {
	dateLabel := tuistyles.ParameterLabelStyle
	if m.focus == fieldStartDate {
		dateLabel = dateLabel.Foreground(tuistyles.ColorPrimary).Bold(true)
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		m.principal.Render(), "",
		m.rate.Render(), "",
		m.tenure.Render(), "",
		dateLabel.Render("Start date"),
		m.startInput.View(),
	)

	hint := "←/→ adjust · ↑/↓ move"
	if !m.rateField.Managed {
		hint += " · d use default rate"
	}
	form = tuistyles.BorderStyle.Render(form + "\n\n" + tuistyles.HelpDescStyle.Render(hint))

	return lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", m.renderFigures())
}

// renderFigures renders the metric cards for the latest preview
func (m Model) renderFigures() string {
	if m.previewErr != nil {
		msg := m.previewErr.Error()
		if errors.Is(m.previewErr, calculation.ErrNoRate) {
			msg = "No default rate is configured. Set a rate with ←/→."
		}
		return tuistyles.ErrorStyle.Render(msg)
	}
	if m.preview == nil {
		return tuistyles.SubtitleStyle.Render("Calculating...")
	}

	p := m.preview
	interest := p.Projection.Interest(p.Terms.Principal)

	rateNote := "typed by officer"
	if p.RateSource == domain.RateDefault {
		rateNote = "from rate table"
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Maturity date", p.Projection.MaturityDate.String()).
			WithNote(fmt.Sprintf("%d months from %s", p.Terms.TenureMonths, p.Terms.StartDate)),
		components.NewMetricCard("Maturity amount", tuistyles.FormatCurrency(p.Projection.MaturityAmount)).
			WithTrend(!interest.IsNegative(), tuistyles.FormatCurrency(interest)),
		components.NewMetricCard("Rate", p.Terms.AnnualRatePercent.StringFixed(2)+"%").
			WithNote(rateNote),
		components.NewMetricCard("Convention", string(p.Convention)),
	}
	return components.MetricGrid(cards, 2)
}

// renderClosure renders the premature-closure simulator
func (m Model) renderClosure() string {
	var b strings.Builder
	b.WriteString(tuistyles.ParameterLabelStyle.Render("Closure date"))
	b.WriteString("\n")
	b.WriteString(m.closureInput.View())
	b.WriteString("\n")
	b.WriteString(tuistyles.HelpDescStyle.Render("enter simulate · esc back"))
	b.WriteString("\n\n")

	switch {
	case m.closureErr != nil:
		b.WriteString(tuistyles.ErrorStyle.Render(m.closureErr.Error()))
	case m.closure != nil:
		s := m.closure
		lines := []string{
			row("Elapsed", s.ElapsedYears.StringFixed(4)+" years"),
			row("Accrued interest", tuistyles.FormatCurrency(s.AccruedInterest)),
			row("Penalty", fmt.Sprintf("%s (%s%%)", tuistyles.FormatCurrency(s.Penalty), s.PenaltyPercentUsed.String())),
			row("Net interest", tuistyles.FormatCurrency(s.NetInterest)),
			row("Payable", tuistyles.TableHighlightStyle.Render(tuistyles.FormatCurrency(s.PayableAmount))),
		}
		if m.preview != nil {
			forgone := m.preview.Projection.MaturityAmount.Sub(s.PayableAmount)
			lines = append(lines, row("Forgone vs. maturity", tuistyles.MetricNegativeStyle.Render(tuistyles.FormatCurrency(forgone))))
		}
		b.WriteString(strings.Join(lines, "\n"))
	default:
		b.WriteString(tuistyles.SubtitleStyle.Render("Enter a date between the start date and the maturity date."))
	}

	return tuistyles.BorderStyle.Render(b.String())
}

func row(label, value string) string {
	return tuistyles.MetricLabelStyle.Render(fmt.Sprintf("%-22s", label)) + value
}

// renderCompare renders the deposit valued at every tenure of the rate table
func (m Model) renderCompare() string {
	if m.compareErr != nil {
		return tuistyles.ErrorStyle.Render(m.compareErr.Error())
	}
	if m.comparison == nil {
		return tuistyles.SubtitleStyle.Render("Comparing tenures...")
	}

	set := m.comparison
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("%-12s %8s %18s %16s %8s", "Tenure", "Rate", "Maturity", "Δ Interest", "Yield")))
	b.WriteString("\n")

	base := set.BaseResult
	b.WriteString(tuistyles.TableHighlightStyle.Render(fmt.Sprintf("%-12s %7s%% %18s %16s %7s%%",
		base.Label()+" *", base.AnnualRatePercent.StringFixed(2), tuistyles.FormatCurrency(base.MaturityAmount), "—", base.EffectiveYield.StringFixed(2))))
	for _, alt := range set.AlternativeResults {
		b.WriteString("\n")
		b.WriteString(tuistyles.TableCellStyle.Render(fmt.Sprintf("%-12s %7s%% %18s %16s %7s%%",
			alt.Label(), alt.AnnualRatePercent.StringFixed(2), tuistyles.FormatCurrency(alt.MaturityAmount),
			tuistyles.FormatCurrency(alt.InterestDiffFromBase), alt.EffectiveYield.StringFixed(2))))
	}

	if len(set.Recommendations) > 0 {
		b.WriteString("\n\n")
		for _, rec := range set.Recommendations {
			b.WriteString(tuistyles.InfoStyle.Render("• " + rec))
			b.WriteString("\n")
		}
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	keys := [][2]string{
		{"p", "Opening form with live maturity preview"},
		{"x", "Simulate a premature closure"},
		{"c", "Compare the deposit across rate-table tenures"},
		{"tab / ↑↓", "Move between form fields"},
		{"← →", "Adjust the focused slider"},
		{"d", "Let the rate table pick the rate again"},
		{"esc", "Back to the preview"},
		{"q / ctrl+c", "Quit"},
	}

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(tuistyles.HelpKeyStyle.Render(fmt.Sprintf("%-12s", k[0])))
		b.WriteString(tuistyles.HelpDescStyle.Render(k[1]))
		b.WriteString("\n")
	}
	b.WriteString("\nThe rate follows the bank's default rate table until you change it.\n")
	b.WriteString("Changing the tenure then leaves your rate alone.")
	return tuistyles.BorderStyle.Render(b.String())
}
