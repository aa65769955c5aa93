package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garfunkel/nastie"
)

func main() {
	// start mock FreeNAS API (see mock_api.go)
	go StartMockAPI(":9999", "root", "demo")
	time.Sleep(100 * time.Millisecond)

	d, err := nastie.New(
		nastie.WithUpstream("localhost", 9999),
		nastie.WithCredentials("root", "demo"),
		nastie.WithBindAddress("localhost", 8080),
		nastie.WithPollInterval(5*time.Second),
		nastie.WithTitle("nastie demo"),
	)
	if err != nil {
		slog.Error("failed to create dashboard", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   nastie Demo                                         ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Jails:                                              ║")
	fmt.Println("  ║   • plex, transmission, jellyfin                      ║")
	fmt.Println("  ║   • syncthing comes and goes on a timer               ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := d.Start(ctx); err != nil {
		slog.Error("nastie error", "error", err)
		os.Exit(1)
	}
}
