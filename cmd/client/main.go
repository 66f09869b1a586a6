package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"dentaldesk/internal/app"
	"dentaldesk/internal/config"
	"dentaldesk/internal/gateway"
	"dentaldesk/internal/session"
	"dentaldesk/internal/utils"
	"dentaldesk/internal/view"
)

func main() {
	serverFlag := flag.String("server", "", "Override backend base URL (e.g. https://api.example.com)")
	flag.Parse()

	cfg := config.Load()
	if *serverFlag != "" {
		cfg.BackendURL = config.NormalizeURL(*serverFlag)
	}

	logger, err := utils.NewLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening log:", err)
		os.Exit(1)
	}
	defer logger.Close()

	key, source, err := session.StorageKey(cfg.MasterKeyHex, cfg.MasterKeyPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading storage key:", err)
		os.Exit(1)
	}
	storage, err := session.NewFileStorage(cfg.HomeDir, key)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening session storage:", err)
		os.Exit(1)
	}
	logger.Infof("session file %s (key from %s)", storage.Path(), source)

	sessions := session.NewStore(storage)
	api := gateway.New(cfg.BackendURL, sessions, gateway.WithLogger(logger))
	dash := app.NewDashboard(api, sessions, app.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("DentalAI client, backend", cfg.BackendURL)
	dash.Restore(ctx)
	if err := view.Render(os.Stdout, dash.State()); err != nil {
		logger.Errorf("render: %v", err)
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !in.Scan() {
			break
		}
		quit, err := execute(ctx, dash, in.Text(), os.Stdout)
		if quit {
			break
		}
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		if err := view.Render(os.Stdout, dash.State()); err != nil {
			logger.Errorf("render: %v", err)
		}
	}
}
