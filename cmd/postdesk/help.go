package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("P O S T D E S K")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Write, search and manage your posts from the terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"postdesk", "Open the dashboard (interactive TUI)"},
		{"postdesk login", "Sign in with email and password"},
		{"postdesk login --google", "Sign in with Google in your browser"},
		{"postdesk logout", "Clear your session"},
		{"postdesk posts", "Print your posts (-o text|json|yaml, -q term, -p page)"},
		{"postdesk --version", "Show version"},
		{"postdesk help", "Show this help"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-26s", c.cmd)), descStyle.Render(c.desc))
	}

	env := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).
		Render("Settings: POSTDESK_API_URL, POSTDESK_TOKEN, POSTDESK_ENV, POSTDESK_LOG_LEVEL (or a .env file)")
	fmt.Fprintf(w, "\n  %s\n\n", env)
}
