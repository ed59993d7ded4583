package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/synqhub/corporate-feed/internal/app"
	"github.com/synqhub/corporate-feed/internal/command"
	"github.com/synqhub/corporate-feed/internal/datasources/mysql"
	"github.com/synqhub/corporate-feed/internal/domain"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx := context.Background()

	// Setup logger
	logLevel := slog.LevelInfo
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := logLevel.UnmarshalText([]byte(lvl)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL: %s\n", lvl)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	ctx = domain.ContextWithLogger(ctx, logger)

	if err := run(ctx); err != nil {
		logger.ErrorContext(ctx, "feed regeneration sweep failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "feed regeneration sweep completed successfully")
}

func run(ctx context.Context) error {
	mysqlURI := os.Getenv("MYSQL_URI")
	if mysqlURI == "" {
		return fmt.Errorf("MYSQL_URI environment variable is required")
	}

	db, err := mysql.Connect(ctx, mysqlURI)
	if err != nil {
		return fmt.Errorf("connecting to MySQL: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := mysql.New(db)

	regenerateCmd := command.NewRegenerateFeed(repo, repo, repo, repo, repo, repo)

	runCmd := command.NewRunFeedRegeneration(
		repo,
		regenerateCmd,
		app.DefaultRunFeedRegenerationConfig(),
	)

	_, err = runCmd.Execute(ctx, command.RunFeedRegenerationRequest{})
	return err
}
