package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codebench-ai/codebench/internal/assistant"
	"github.com/codebench-ai/codebench/internal/config"
	"github.com/codebench-ai/codebench/internal/db"
	"github.com/codebench-ai/codebench/internal/history"
	"github.com/codebench-ai/codebench/internal/sandbox"
	"github.com/codebench-ai/codebench/internal/server"
	"github.com/codebench-ai/codebench/internal/snippets"
	"github.com/codebench-ai/codebench/internal/web"
)

var (
	servePort     int
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the codebench HTTP server",
	Long:  `Serves the browser workbench: chat API, sandboxed Python execution, session history, and the snippet library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)

		if servePort > 0 {
			cfg.Port = servePort
		}
		if serveAllowAll {
			cfg.AllowAllOrigins = true
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:     cfg.Port,
			Version:  Version,
			AllowAll: cfg.AllowAllOrigins,
		})
		registerAllRoutes(srv, database, cfg)

		// Retention runs in-process alongside the server.
		if cfg.RetentionDays > 0 {
			retention, err := history.NewRetention(history.NewStore(database), cfg.RetentionDays, cfg.PruneSchedule)
			if err != nil {
				return fmt.Errorf("configuring retention: %w", err)
			}
			retention.Start()
			defer retention.Stop()
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "codebench v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DBPath)
		fmt.Fprintf(os.Stderr, "  Open http://localhost:%d in a browser\n", cfg.Port)

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires every feature onto the server's router. The
// static UI mounts last so API routes keep precedence over its catch-all.
func registerAllRoutes(srv *server.Server, database *db.DB, cfg *config.Config) {
	r := srv.Router()

	historyStore := history.NewStore(database)
	engine := buildEngine(database, cfg)
	runner := sandbox.NewRunner(cfg.Python, time.Duration(cfg.RunTimeoutSeconds)*time.Second, cfg.MaxOutputKB)
	snippetStore := snippets.NewStore(database)

	assistant.RegisterRoutes(r, engine)
	sandbox.RegisterRoutes(r, runner, historyStore)
	history.RegisterRoutes(r, historyStore)
	snippets.RegisterRoutes(r, snippetStore, openSnippetIndex(cfg), historyStore)
	web.RegisterRoutes(r)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow any CORS origin (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
