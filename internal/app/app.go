package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/synqhub/corporate-feed/internal/command"
	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/datasources/mysql"
	"github.com/synqhub/corporate-feed/internal/transport/web/router"
	"github.com/synqhub/corporate-feed/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	repo, err := setupFeedRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up feed repository: %w", err)
	}

	authMiddleware, err := setupAuthMiddleware(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up auth middleware: %w", err)
	}

	regenerateFeedCmd := command.NewRegenerateFeed(repo, repo, repo, repo, repo, repo)

	getFeedCmd := command.NewGetFeed(
		repo,
		regenerateFeedCmd,
		repo,
		repo,
		repo,
		MustGetEnvAsDuration(ctx, "FEED_STALENESS_WINDOW"),
	)

	contentChangedCmd := command.NewContentChanged(
		regenerateFeedCmd,
		MustGetEnvAsDuration(ctx, "CONTENT_EVENT_REGEN_TIMEOUT"),
	)

	httpRouter, err := router.MakeRouter(
		repo,
		getFeedCmd,
		regenerateFeedCmd,
		contentChangedCmd,
		MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
		MustGetEnvAsDuration(ctx, "RSS_FEED_CACHE_MAX_AGE"),
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	return []Component{
		&server.Server{
			TLSDisabled:       MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
			TLSDisabledPort:   MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostnames: MustGetEnvAsStrings(ctx, "HTTP_AUTOCERT_HOSTNAMES"),
			Router:            httpRouter,
		},
	}, nil
}

func setupFeedRepository(ctx context.Context) (datasources.FeedRepository, error) {
	db, err := mysql.Connect(ctx, MustGetEnvAsString(ctx, "MYSQL_URI"))
	if err != nil {
		return nil, fmt.Errorf("connecting to MySQL: %w", err)
	}
	return mysql.New(db), nil
}

func setupAuthMiddleware(ctx context.Context) (func(http.Handler) http.Handler, error) {
	var validators []router.AuthValidator

	for _, driver := range MustGetEnvAsStrings(ctx, "AUTH_DRIVERS") {
		switch driver {
		case "":
			// Skip empty strings (e.g., from splitting an empty AUTH_DRIVERS)
		case "auth0":
			v, err := router.NewAuth0Validator(
				MustGetEnvAsString(ctx, "AUTH0_DOMAIN"),
				MustGetEnvAsString(ctx, "AUTH0_AUDIENCE"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating Auth0 validator: %w", err)
			}
			validators = append(validators, v)
		default:
			return nil, fmt.Errorf("unknown auth driver [%s]", driver)
		}
	}

	return router.NewAuthMiddleware(validators), nil
}
