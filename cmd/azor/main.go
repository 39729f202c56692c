package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var sessionFlag string

var rootCmd = &cobra.Command{
	Use:   "azor",
	Short: "Interactive multi-provider chat with durable sessions",
	Long: `azor is an interactive chat CLI. Conversations are persisted as one
JSON record per session under the log directory, with friendly
filenames derived from the first message. The active provider is
selected with the ENGINE environment variable (GEMINI, CLAUDE, OPENAI
or YANDEX; Gemini is the default).`,
	RunE: runChat,
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&sessionFlag, "session", "s", "", "session id to resume")
	rootCmd.AddCommand(sessionsCmd)
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return ""
	}
	return string(data)
}
