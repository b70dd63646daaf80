package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// errorModal is the blocking failure notification. The detail text sits in a
// viewport since service errors can be long.
type errorModal struct {
	notice string
	detail string
	vp     viewport.Model
	width  int
	height int
	padX   int
	padY   int
	box    lipglossv2.Style
}

func newErrorModal(notice string, err error, termW, termH int) *errorModal {
	m := &errorModal{notice: notice, padX: 2, padY: 1}
	if err != nil {
		m.detail = err.Error()
	}
	m.resizeForTerm(termW, termH)
	return m
}

func (m *errorModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	w := int(float64(termW) * 0.5)
	if termW < 80 {
		w = termW - 4
	}
	if w < 36 {
		w = max(30, termW-2)
	}
	h := int(float64(termH) * 0.4)
	if h < 10 {
		h = min(10, max(8, termH-1))
	}
	m.width, m.height = w, h
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("203"))

	// borders, padding, notice line, hint line and two spacers
	innerW := max(10, w-2-m.padX*2)
	innerH := max(1, h-2-m.padY*2-4)
	if m.vp.Width == 0 {
		m.vp = viewport.New(innerW, innerH)
	} else {
		m.vp.Width = innerW
		m.vp.Height = innerH
	}
	m.vp.SetContent(m.detail)
}

func (m *errorModal) update(msg tea.Msg) (*errorModal, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.resizeForTerm(x.Width, x.Height)
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *errorModal) View() string {
	var b strings.Builder
	b.WriteString(noticeStyle.Bold(true).Render(m.notice))
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("esc/enter to dismiss"))
	return m.box.Render(b.String())
}
