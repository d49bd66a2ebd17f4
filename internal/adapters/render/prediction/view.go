package prediction

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/taixiu-predictor/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const confidenceBarWidth = 24

type RenderOptions struct {
	Now    time.Time
	Recent []domain.Round
}

func renderView(p domain.Prediction, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Tài/Xỉu Prediction"),
		s.header.Render(fmt.Sprintf("session %d → %d%s", p.PreviousSession, p.NextSession, generatedSuffix(p.GeneratedAt, opts.Now))),
	}

	last := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render("last round:"),
		" ",
		s.detail.Render(fmt.Sprintf("dice %d-%d-%d total %d", p.Dice[0], p.Dice[1], p.Dice[2], p.Total)),
		" ",
		outcomeLabel(p.Outcome, s),
	)
	next := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render("prediction:"),
		" ",
		outcomeLabel(p.Prediction, s),
	)
	confidence := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render("confidence:"),
		" ",
		renderProgressBar(p.Confidence, confidenceBarWidth, s),
		" ",
		lipgloss.NewStyle().Foreground(interpolateColor(p.Confidence, 0.5, 0.98)).Render(fmt.Sprintf("%.0f%%", p.Confidence*100)),
	)
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, last, next, confidence)))

	if strip := patternStrip(opts.Recent, s); strip != "" {
		lines = append(lines, s.section.Render(s.label.Render("recent: ")+strip))
	}

	if p.Explanation != "" {
		reasons := make([]string, 0, 5)
		for _, part := range strings.Split(p.Explanation, " | ") {
			reasons = append(reasons, s.reason.Render("• "+part))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, reasons...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func outcomeLabel(outcome domain.Outcome, s styles) string {
	switch outcome {
	case domain.OutcomeHigh:
		return s.high.Render(fmt.Sprintf("%s (%s)", outcome, outcome.Name()))
	case domain.OutcomeLow:
		return s.low.Render(fmt.Sprintf("%s (%s)", outcome, outcome.Name()))
	default:
		return s.detail.Render("n/a")
	}
}

func patternStrip(rounds []domain.Round, s styles) string {
	var b strings.Builder
	for _, round := range rounds {
		switch round.Outcome {
		case domain.OutcomeHigh:
			b.WriteString(s.high.Render(round.Outcome.Symbol()))
		case domain.OutcomeLow:
			b.WriteString(s.low.Render(round.Outcome.Symbol()))
		}
	}
	return b.String()
}

func generatedSuffix(generatedAt, now time.Time) string {
	if generatedAt.IsZero() || now.IsZero() {
		return ""
	}
	age := now.Sub(generatedAt)
	if age < time.Second {
		return " (just now)"
	}
	return fmt.Sprintf(" (%s ago)", age.Truncate(time.Second))
}

func renderProgressBar(fraction float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * math.Max(0, math.Min(1, fraction))))
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := math.Max(0, math.Min(1, (value-min)/(max-min)))
	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
