package prediction

import (
	"errors"
	"io"

	"github.com/bnema/taixiu-predictor/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	prediction domain.Prediction
	opts       RenderOptions
	styles     styles
	output     string
}

func newModel(prediction domain.Prediction, opts RenderOptions) model {
	return model{
		prediction: prediction,
		opts:       opts,
		styles:     newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.prediction, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws a prediction card for the terminal.
func Render(prediction domain.Prediction, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(prediction, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
