package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/adoption-client/internal/adoption"
	"github.com/spec-kit/adoption-client/internal/config"
	"github.com/spec-kit/adoption-client/internal/observability"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

const usage = `usage: adoptctl <command> [flags]

commands:
  login -email E -password P [-remember]
  logout
  whoami
  animals list|get|create|delete
  shelters list|get
  adopt -animal ID [-message M]
  contact -name N -email E -subject S -message M
  stats`

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the exit code so deferred cleanup runs before exiting.
func realMain(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}
	logger, err := observability.NewLogger(cfg.Logger, "stderr")
	if err != nil {
		log.Printf("failed to init logger: %v", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := adoption.New(ctx, cfg, adoption.Options{Logger: logger})
	if err != nil {
		logger.Error("failed to build client", zap.Error(err))
		return 1
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing client failed", zap.Error(err))
		}
	}()

	if err := client.Session.Hydrate(ctx); err != nil {
		logger.Warn("could not restore session", zap.Error(err))
	}

	if err := run(ctx, client, args[0], args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, client *adoption.Client, command string, args []string, out io.Writer) error {
	switch command {
	case "login":
		return login(ctx, client, args, out)
	case "logout":
		return client.Session.Logout(ctx)
	case "whoami":
		user, err := client.Session.CurrentUser(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, user)
	case "animals":
		return animals(ctx, client, args, out)
	case "shelters":
		return shelters(ctx, client, args, out)
	case "adopt":
		return adopt(ctx, client, args, out)
	case "contact":
		return contact(ctx, client, args, out)
	case "stats":
		return printJSON(out, client.Stats())
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe renders field errors one per line.
func describe(err error) string {
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	msg := apiErr.Message
	for field, reason := range apiErr.Fields {
		msg += fmt.Sprintf("\n  %s: %s", field, reason)
	}
	return msg
}
