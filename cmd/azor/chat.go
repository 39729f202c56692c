package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"azor-chatdog/internal/config"
	"azor-chatdog/internal/llm"
	"azor-chatdog/internal/session"
	"azor-chatdog/internal/wal"
)

const assistantName = "Azor"

func runChat(cmd *cobra.Command, args []string) error {
	cfg := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		// No provider means no session work at all.
		log.Fatalf("failed to create llm client: %v", err)
	}

	store := session.NewStore(cfg.LogDir)
	manager := session.NewManager(store, client, readSystemPrompt(cfg.SystemPromptPath))

	resumed, err := manager.InitializeFromCLI(sessionFlag)
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}

	rec, err := wal.NewFileRecorder(cfg.LogDir)
	if err != nil {
		log.Printf("failed to init wal recorder: %v", err)
		rec = nil
	}

	fmt.Printf("Engine: %s; Model: %s\n", cfg.Engine, client.ModelName())
	if !client.IsAvailable() {
		fmt.Println("Warning: provider credential missing; calls will fail.")
	}
	if resumed {
		fmt.Printf("Resumed session %q (%s)\n", manager.DisplayName(), session.ShortID(manager.SessionID()))
	} else {
		fmt.Printf("New session %s\n", session.ShortID(manager.SessionID()))
	}
	fmt.Println(`Type a message, or /help for commands.`)

	scanner := bufio.NewScanner(os.Stdin)
	for ctx.Err() == nil {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if shouldExit := handleCommand(store, manager, line); shouldExit {
				break
			}
			continue
		}

		reply := manager.Send(ctx, line)
		fmt.Printf("\n%s: %s\n", assistantName, reply)
		fmt.Printf("Tokens (approx): %d\n", manager.TokenCount())

		if rec != nil {
			ev := wal.Event{
				Timestamp:         time.Now(),
				SessionID:         manager.SessionID(),
				UserMessage:       line,
				AssistantResponse: reply,
			}
			if err := rec.AppendInteraction(ev); err != nil {
				log.Printf("wal append failed: %v", err)
			}
		}
		if err := manager.SaveToFile(); err != nil {
			log.Printf("error saving session: %v", err)
		}
	}

	// Final save on exit or interrupt, best effort.
	manager.CleanupAndSave()
	return nil
}

func handleCommand(store *session.Store, manager *session.Manager, line string) (shouldExit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/exit", "/quit":
		return true
	case "/sessions", "/list":
		printSessions(store.List())
	case "/load":
		if len(fields) < 2 {
			fmt.Println("Usage: /load <session-id>")
			return false
		}
		resumed, err := manager.InitializeFromCLI(fields[1])
		if err != nil {
			fmt.Printf("Cannot load session: %v\n", err)
			return false
		}
		if resumed {
			fmt.Printf("Resumed session %q\n", manager.DisplayName())
		} else {
			fmt.Printf("No saved history for %s, starting fresh.\n", session.ShortID(fields[1]))
		}
	case "/rename":
		if len(fields) < 3 {
			fmt.Println("Usage: /rename <session-id> <new name>")
			return false
		}
		newName := strings.Join(fields[2:], " ")
		sanitized, err := store.Rename(fields[1], newName)
		if err != nil {
			fmt.Printf("Rename failed: %v\n", err)
			return false
		}
		fmt.Printf("Renamed session to %q\n", sanitized)
	case "/delete":
		if len(fields) < 2 {
			fmt.Println("Usage: /delete <session-id>")
			return false
		}
		if err := store.Remove(fields[1]); err != nil {
			fmt.Printf("Delete failed: %v\n", err)
			return false
		}
		fmt.Println("Session deleted.")
	case "/help":
		fmt.Println(`Commands:
  /sessions            list saved sessions
  /load <id>           switch to another session
  /rename <id> <name>  rename a session
  /delete <id>         delete a session
  /exit                save and quit`)
	default:
		fmt.Printf("Unknown command %s, try /help\n", fields[0])
	}
	return false
}
