package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/datadeck/internal/api"
	"github.com/rebeliceyang/datadeck/internal/app"
	"github.com/rebeliceyang/datadeck/internal/config"
	"github.com/rebeliceyang/datadeck/internal/secrets"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := runTokenCommand(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.GetDefaults()
	}

	token := ""
	if cfg.API.TokenFromKeyring {
		token, err = secrets.Token()
		if err != nil {
			log.Printf("Warning: Could not read API token: %v (continuing without)\n", err)
		}
	}

	client, err := api.NewClient(cfg.API.BaseURL, token)
	if err != nil {
		if errors.Is(err, api.ErrNoBaseURL) {
			fmt.Fprintln(os.Stderr, "No API base URL configured.")
			fmt.Fprintln(os.Stderr, "Set api.base_url in the config file or export DATADECK_API_URL.")
		} else {
			fmt.Fprintf(os.Stderr, "Invalid API base URL: %v\n", err)
		}
		os.Exit(1)
	}

	configDir, err := config.GetConfigPath()
	if err != nil {
		log.Printf("Warning: Could not resolve config directory: %v (using current directory)\n", err)
		configDir = "."
	}

	model := app.New(cfg, client, configDir)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// runTokenCommand manages the API token in the OS keyring.
func runTokenCommand(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: datadeck token set|clear")
	}
	switch args[0] {
	case "set":
		fmt.Print("API token: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read token: %w", err)
		}
		token := strings.TrimSpace(line)
		if token == "" {
			return errors.New("empty token")
		}
		if err := secrets.SetToken(token); err != nil {
			return err
		}
		fmt.Println("Token stored. Set api.token_from_keyring: true in the config to use it.")
		return nil
	case "clear":
		if err := secrets.DeleteToken(); err != nil {
			return err
		}
		fmt.Println("Token removed.")
		return nil
	default:
		return fmt.Errorf("unknown token command %q (want set or clear)", args[0])
	}
}
