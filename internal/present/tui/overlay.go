package tui

import (
	"strings"

	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

var (
	backdropStyle = lipglossv2.NewStyle().Faint(true).Foreground(lipglossv2.Color("240"))
	shadowStyle   = lipglossv2.NewStyle().Background(lipglossv2.Color("235"))
)

// overlay draws the modal over a greyed-out copy of base. The box sits in the
// upper third of the screen with a one-cell shadow below and to the right.
func (m *errorModal) overlay(base string, termW, termH int) string {
	if termW <= 0 {
		termW = 80
	}
	if termH <= 0 {
		termH = 24
	}
	box := m.View()
	boxW, boxH := lipglossv2.Width(box), lipglossv2.Height(box)
	x := max(0, (termW-boxW)/2)
	y := max(0, (termH-boxH)/3)

	backdrop := lipglossv2.NewLayer(backdropStyle.Render(base)).
		Width(termW).
		Height(termH)
	layers := []*lipglossv2.Layer{backdrop}
	if x+boxW < termW && y+boxH < termH {
		shadow := shadowStyle.Render(strings.Repeat(strings.Repeat(" ", boxW)+"\n", boxH-1) + strings.Repeat(" ", boxW))
		layers = append(layers, lipglossv2.NewLayer(shadow).X(x+1).Y(y+1).Z(1))
	}
	layers = append(layers, lipglossv2.NewLayer(box).X(x).Y(y).Z(2))
	return lipglossv2.NewCanvas(layers...).Render()
}
