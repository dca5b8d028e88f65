package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/whizpalsdeveloper/NotesApp/client"
	"github.com/whizpalsdeveloper/NotesApp/ui"
	"github.com/whizpalsdeveloper/NotesApp/utils"
)

func main() {
	_ = godotenv.Load()

	baseURL := utils.GetEnvAsString("NOTES_API_URL", "http://localhost:8080")
	api := client.New(baseURL)

	program := tea.NewProgram(ui.New(api), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
