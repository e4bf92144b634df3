// Package teaui hosts the Bubble Tea program for the lex TUI.
package teaui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/lex/pkg/app"
)

// Run launches the interactive lookup and review UI.
func Run(svc *app.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
