package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"azor-chatdog/internal/config"
	"azor-chatdog/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Run: func(cmd *cobra.Command, args []string) {
		printSessions(newStore().List())
	},
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <session-id> <new-name>",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sanitized, err := newStore().Rename(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Renamed session to %q\n", sanitized)
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newStore().Remove(args[0]); err != nil {
			return err
		}
		fmt.Println("Session deleted.")
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd, sessionsRenameCmd, sessionsDeleteCmd)
}

func newStore() *session.Store {
	return session.NewStore(config.New().LogDir)
}

func printSessions(infos []session.Info) {
	if len(infos) == 0 {
		fmt.Println("No saved sessions.")
		return
	}
	for _, info := range infos {
		if info.Err != nil {
			fmt.Printf("- %s %s\n", titleStyle.Render(info.DisplayName), errStyle.Render(fmt.Sprintf("(unreadable: %v)", info.Err)))
			continue
		}
		fmt.Printf("- %s %s %s, %s\n",
			titleStyle.Render(info.DisplayName),
			idStyle.Render("("+info.ID+")"),
			countStyle.Render(fmt.Sprintf("%d messages", info.MessageCount)),
			dateStyle.Render("last activity "+info.LastActivity),
		)
	}
	fmt.Println("Load a session with: azor --session <id>")
}
