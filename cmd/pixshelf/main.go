package main

import (
	"fmt"
	"net/http/cookiejar"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pixshelf/internal/api"
	"pixshelf/internal/config"
	"pixshelf/internal/logging"
	"pixshelf/internal/session"
	"pixshelf/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pixshelf: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("PIXSHELF_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer cleanup()

	store, err := session.Open(cfg.SessionDB)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close session store", "error", err)
		}
	}()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("failed to create cookie jar: %w", err)
	}

	client, err := api.New(cfg.BaseURL, jar, logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	base := client.BaseURL()
	if cookies, err := store.Load(base.Host); err != nil {
		logger.Warn("failed to load saved session", "error", err)
	} else if len(cookies) > 0 {
		jar.SetCookies(base, cookies)
		logger.Debug("restored session", "host", base.Host)
	}

	app := tui.NewApp(client, logger, cfg.PreviewMax)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("program failed: %w", err)
	}

	// Whatever the session cookie looks like now, expired included, is what
	// the next start should see.
	if err := store.Save(base.Host, jar.Cookies(base)); err != nil {
		logger.Error("failed to save session", "error", err)
	}
	return nil
}
