package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/justsurfingit/internship-finder/internal/auth"
	"github.com/justsurfingit/internship-finder/internal/config"
	"github.com/justsurfingit/internship-finder/internal/handlers"
	"github.com/justsurfingit/internship-finder/internal/notify"
	"github.com/justsurfingit/internship-finder/internal/services"
	"github.com/justsurfingit/internship-finder/internal/workflow"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	llm, err := services.NewLLMService(ctx, a.cfg.LLM)
	if err != nil {
		return err
	}

	sessions := workflow.NewRegistry()
	sessions.StartJanitor(ctx, a.cfg.Server.SweepInterval, a.cfg.Server.SessionTTL)

	notifier := notify.NewNotifier(a.gateway, senders(ctx, a.cfg)...)
	submissions := services.NewSubmissionService(a.gateway, sessions, notifier, llm)

	r := gin.Default()
	r.Use(handlers.CORS(a.cfg.Server.AllowedOrigins))
	handlers.Register(r, handlers.NewServices(a.gateway, submissions))

	srv := &http.Server{Addr: a.cfg.Addr(), Handler: r}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s...", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// senders builds every notification channel that is configured. A channel
// that fails to start is logged and skipped.
func senders(ctx context.Context, cfg *config.Config) []notify.Sender {
	var out []notify.Sender

	if httpClient, err := auth.GmailClient(ctx, cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath); err != nil {
		log.Printf("⚠️  Gmail notifications disabled: %v", err)
	} else if svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient)); err != nil {
		log.Printf("⚠️  Failed to create Gmail Service: %v", err)
	} else {
		log.Println("✅ Gmail Service connected successfully.")
		out = append(out, notify.NewGmailSender(svc, cfg.Gmail.Sender))
	}

	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegramSender(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("⚠️  Telegram notifications disabled: %v", err)
		} else {
			out = append(out, tg)
		}
	}

	if cfg.Notion.Token != "" {
		out = append(out, notify.NewNotionSender(cfg.Notion.Token, cfg.Notion.DatabaseID))
	}
	return out
}
