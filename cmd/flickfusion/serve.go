package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/api"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/config"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/corpus"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/dialogue"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/intent"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/journal"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/recommend"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/retrieval"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the catalogue and start the HTTP server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		withMCP, _ := cmd.Flags().GetBool("mcp")
		return runServer(withMCP)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running flickfusion server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status and journal statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func init() {
	serveCmd.Flags().Bool("mcp", false, "also serve MCP tools over stdio")
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "flickfusion.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func runServer(withMCP bool) error {
	fmt.Fprintf(os.Stderr, "flickfusion version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))
	slog.SetDefault(logger)

	// Refuse to start twice. The health check catches servers started
	// without a PID file.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("flickfusion is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("flickfusion is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The bot never answers from a partially built catalogue: any failure
	// here aborts startup.
	printStep("Loading catalogue...")
	c, err := corpus.Load(ctx, corpus.Options{
		MoviesPath:  cfg.Data.MoviesPath,
		CreditsPath: cfg.Data.CreditsPath,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	printStep("Building similarity index...")
	idx, err := retrieval.Build(ctx, c, retrieval.Options{
		MaxFeatures: cfg.Similarity.MaxFeatures,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("building similarity index: %w", err)
	}

	eng, err := recommend.New(ctx, c, recommend.Options{
		PersonTopN: cfg.Recommend.PersonTopN,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("building query engine: %w", err)
	}
	defer eng.Close()

	var store *storage.Store
	if cfg.Storage.Journal {
		store, err = storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
			}
		}()
	}

	botOpts := dialogue.Options{
		Router:      intent.NewRouter(logger),
		Index:       idx,
		Engine:      eng,
		Logger:      logger,
		TopN:        cfg.Recommend.DefaultTopN,
		ShortTopN:   cfg.Recommend.PersonTopN,
		HistorySize: cfg.Session.HistorySize,
		MaxSessions: cfg.Session.MaxSessions,
	}
	deps := api.Deps{
		Index:       idx,
		Engine:      eng,
		SimilarTopN: cfg.Recommend.DefaultTopN,
		SearchTopN:  cfg.Recommend.SearchTopN,
	}
	// Assigned only when open so the interfaces stay nil otherwise.
	if store != nil {
		writer := journal.NewWriter(store, cfg.Storage.QueueSize, logger)
		// Closed after the HTTP server has drained, so late turns still land.
		writer.Start(context.Background())
		defer writer.Close()
		botOpts.Journal = writer
		deps.Journal = store
	}
	if cfg.Server.RateLimit > 0 {
		deps.Limiter = api.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
	}

	bot, err := dialogue.New(botOpts)
	if err != nil {
		return fmt.Errorf("creating bot: %w", err)
	}
	deps.Bot = bot

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewHandler(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if withMCP {
		stdioSrv := server.NewStdioServer(api.NewMCPServer(deps, version))
		go func() {
			if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("MCP stdio server error", "error", err)
			}
		}()
		slog.Info("MCP server started (stdio transport)")
	}

	errCh := make(chan error, 1)
	go func() {
		printSuccess("flickfusion listening on %s (%d movies)", addr, c.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("flickfusion is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop flickfusion (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to flickfusion (PID %d)", pid)
	return nil
}

type healthInfo struct {
	Status     string `json:"status"`
	Movies     int    `json:"movies"`
	Vocabulary int    `json:"vocabulary"`
	Journal    bool   `json:"journal"`
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	client := &apiClient{
		baseURL:    fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port),
		httpClient: &http.Client{Timeout: 2 * time.Second},
	}
	ctx := context.Background()

	health, err := fetchHealth(ctx, client)
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		printStatus("Server", "running on port %d", cfg.Server.Port)
		printStatus("Movies", "%d", health.Movies)
		printStatus("Vocabulary", "%d terms", health.Vocabulary)
	}

	if health != nil && health.Journal {
		if counts, err := fetchIntentCounts(ctx, client); err == nil {
			total := 0
			for _, c := range counts {
				total += c.Count
			}
			printStatus("Interactions", "%d", total)
			for i, c := range counts {
				if i == 5 {
					break
				}
				printStatus("  "+c.Intent, "%d", c.Count)
			}
		}
	}

	printStatus("Movies file", "%s", cfg.Data.MoviesPath)
	printStatus("Credits file", "%s", cfg.Data.CreditsPath)
	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}

func fetchHealth(ctx context.Context, client *apiClient) (*healthInfo, error) {
	resp, err := client.get(ctx, "/health")
	if err != nil {
		return nil, err
	}
	var h healthInfo
	if err := decodeJSON(resp, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func fetchIntentCounts(ctx context.Context, client *apiClient) ([]storage.IntentCount, error) {
	resp, err := client.get(ctx, "/stats/intents")
	if err != nil {
		return nil, err
	}
	var counts []storage.IntentCount
	if err := decodeJSON(resp, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// jsonIndent re-encodes v for terminal display.
func jsonIndent(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
