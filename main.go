// Command playgrid starts the PlayGrid realtime game server.
//
// It exposes the REST API, the WebSocket gameplay endpoint, and the public
// leaderboard and stats projections. Flags control host/port, the config
// file, the database path, debug logging, version output, and optional
// ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/playgrid/playgrid/api"
	"github.com/playgrid/playgrid/game/config"
	"github.com/playgrid/playgrid/game/matchmaking"
	"github.com/playgrid/playgrid/game/service"
	"github.com/playgrid/playgrid/game/session"
	"github.com/playgrid/playgrid/player"
	"github.com/playgrid/playgrid/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "PlayGrid Server"
)

// Configuration flags control how the server starts.
var (
	port         = flag.Int("port", 8080, "HTTP server port")
	host         = flag.String("host", "localhost", "HTTP server host")
	configFile   = flag.String("config", getConfigFileDefault(), "Path to the server configuration file")
	dbPath       = flag.String("db", "", "Path to the SQLite database (overrides config)")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

// getConfigFileDefault returns the default configuration file path.
// It first honors the PLAYGRID_CONFIG environment variable, then falls back
// to "playgrid.json".
func getConfigFileDefault() string {
	if path := os.Getenv("PLAYGRID_CONFIG"); path != "" {
		return path
	}
	return "playgrid.json"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090         # Run server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -ngrok             # Expose the server through an ngrok tunnel\n", os.Args[0])
	}
}

// main parses flags, wires the services, and runs the HTTP server.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	flag.Parse()

	// Show version if requested
	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	// Setup logging
	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	log.Printf("Starting %s v%s", AppName, Version)

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run wires the services and blocks until shutdown.
func run(cfg *config.Config) error {
	store, err := player.OpenStore(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open player store: %w", err)
	}
	defer store.Close()

	hub := websocket.NewHub()
	aggregator := player.NewAggregator(store, hub, cfg.LeaderboardSize)

	gameService := service.New(
		session.NewRegistry(),
		session.NewDirectory(),
		matchmaking.NewQueue(),
		hub,
		store,
		aggregator,
		cfg,
	)

	wsHandler := websocket.NewHandler(hub, gameService)
	apiServer := api.NewServer(gameService, store, aggregator, hub, wsHandler)

	addr := fmt.Sprintf("%s:%d", *host, *port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      apiServer,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws", addr)
		log.Printf("Leaderboard: http://%s/leaderboard", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Periodic leaderboard republish keeps idle clients fresh. A
	// non-positive interval disables it.
	if cfg.RepublishInterval() > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			leaderboardRoutine(ctx, aggregator, cfg.RepublishInterval())
		}()
	}

	// Check if ngrok should be enabled (from flag or environment)
	ngrokShouldRun := *ngrokEnabled
	if !ngrokShouldRun {
		if envEnabled := os.Getenv("NGROK_ENABLED"); envEnabled == "true" || envEnabled == "1" {
			ngrokShouldRun = true
		}
	}

	// Start ngrok tunnel if enabled
	if ngrokShouldRun {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, apiServer)
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// leaderboardRoutine periodically republishes the leaderboard to every
// connected client. A non-positive interval means the routine is disabled
// and returns immediately.
func leaderboardRoutine(ctx context.Context, aggregator *player.Aggregator, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := aggregator.Republish(ctx); err != nil {
				log.Printf("Periodic leaderboard republish failed: %v", err)
			}
		}
	}
}

// runNgrokTunnel provisions a public tunnel and serves the API through it
// until the context is cancelled.
func runNgrokTunnel(ctx context.Context, handler http.Handler) {
	// Get auth token from flag or environment (support both naming conventions)
	authToken := *ngrokAuth
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
		if authToken == "" {
			authToken = os.Getenv("NGROK_AUTH_TOKEN")
		}
	}

	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	// Get domain from flag or environment
	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(authToken),
	)
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}
