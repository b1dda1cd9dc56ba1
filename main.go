package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"stickycal/internal/store"
	"stickycal/internal/tui"
)

func main() {
	if os.Getenv("STICKYCAL_DEBUG") != "" {
		f, err := tea.LogToFile("stickycal-debug.log", "debug")
		if err == nil {
			defer f.Close()
		}
	}

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	app := tui.NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
