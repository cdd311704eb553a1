// Command boardwatch loads a retro board, follows its live stream and prints
// the reconciled columns after every change.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/reconcile"
)

func main() {
	baseURL := flag.String("api", envOr("RETRO_API_URL", "http://localhost:8080"), "API base URL")
	userID := flag.String("user", os.Getenv("RETRO_USER_ID"), "user id sent as X-User-Id")
	retries := flag.Int("retries", 3, "full re-fetch attempts after a failed load")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: boardwatch [flags] <board-id>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *baseURL, *userID, flag.Arg(0), *retries); err != nil {
		logger.Fatal("boardwatch stopped", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger, baseURL, userID, boardID string, retries int) error {
	view := reconcile.NewBoardView(boardID)
	loader := reconcile.NewHTTPLoader(baseURL, userID)

	err := view.Load(ctx, loader)
	for attempt := 1; err != nil && attempt <= retries; attempt++ {
		logger.Warn("Board load failed; retrying",
			zap.String("board_id", boardID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(attempt) * time.Second):
		}
		err = view.Retry(ctx, loader)
	}
	if err != nil {
		return fmt.Errorf("load board %s: %w", boardID, err)
	}
	render(os.Stdout, view)

	stream, err := reconcile.DialStream(ctx, reconcile.StreamURL(baseURL, boardID), userID)
	if err != nil {
		return fmt.Errorf("connect stream: %w", err)
	}
	defer stream.Close()
	logger.Info("Following board", zap.String("board_id", boardID))

	return reconcile.Follow(ctx, stream, view,
		func() { render(os.Stdout, view) },
		func(err error) { logger.Warn("Skipping board event", zap.Error(err)) },
	)
}

func render(w io.Writer, view *reconcile.BoardView) {
	fmt.Fprintf(w, "\n== board %s (%s) ==\n", view.BoardID(), time.Now().Format(time.Kitchen))
	for _, column := range view.Columns() {
		fmt.Fprintf(w, "\n[%s]\n", column.Stage.Name)
		if len(column.Cards) == 0 {
			fmt.Fprintln(w, "  (no cards)")
		}
		for _, card := range column.Cards {
			fmt.Fprintf(w, "  %2d ▲  %s\n", reconcile.Upvotes(card), card.Content)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
