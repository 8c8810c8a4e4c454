package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fdgo/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: fdgo-tui <settings-file>")
		os.Exit(1)
	}
	settingsPath := os.Args[1]

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		fmt.Printf("Error: settings file not found: %s\n", settingsPath)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(settingsPath),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
