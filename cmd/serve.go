package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/longkey1/sunyata/internal/sunyata/assistant"
	"github.com/longkey1/sunyata/internal/sunyata/prompt"
	"github.com/longkey1/sunyata/internal/sunyata/session"
	"github.com/longkey1/sunyata/internal/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveAddr string

// shutdownTimeout bounds how long in-flight streams may finish on exit.
const shutdownTimeout = 30 * time.Second

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant's web page",
	Long: `Start the web server. Every browser gets its own session, identified by a
cookie, with its own history. Idle sessions are dropped after
session_idle_timeout.

The system prompt is reloaded when the config file or the prompt file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, system, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}

		logger := newLogger(true)
		a, err := newAssistant(cfg, system, logger)
		if err != nil {
			return err
		}

		srv := web.New(a, session.NewStore(), web.Options{
			Addr:               cfg.Addr,
			RateLimit:          cfg.RateLimit,
			SessionIdleTimeout: cfg.SessionIdleTimeout,
			DefaultTemperature: cfg.Temperature,
		}, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watchConfig(a, logger)
		if cfg.PromptFile != "" {
			go func() {
				err := prompt.Watch(ctx, cfg.PromptFile, func(s string) {
					a.SetSystemPrompt(s)
					logger.Printf("PROMPT_RELOAD | file=%s", cfg.PromptFile)
				}, func(err error) {
					logger.Printf("PROMPT_RELOAD_FAILED | file=%s error=%v", cfg.PromptFile, err)
				})
				if err != nil {
					logger.Printf("PROMPT_WATCH_FAILED | file=%s error=%v", cfg.PromptFile, err)
				}
			}()
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	},
}

// watchConfig reloads the system prompt when the config file changes.
// Other settings take effect on restart.
func watchConfig(a *assistant.Assistant, logger *log.Logger) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		_, system, err := loadConfig()
		if err != nil {
			logger.Printf("CONFIG_RELOAD_FAILED | file=%s error=%v", e.Name, err)
			return
		}
		a.SetSystemPrompt(system)
		logger.Printf("CONFIG_RELOAD | file=%s", e.Name)
	})
	viper.WatchConfig()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default from config, \":8501\")")
}
