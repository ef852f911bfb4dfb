package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"tdms-savior/tdms"
)

func Start(title string, file *tdms.File) error {
	browser := NewBrowser(title, file)
	if err := tea.NewProgram(browser).Start(); err != nil {
		return errors.Wrap(err, "ui.Start error")
	}
	return nil
}
