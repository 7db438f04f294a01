package app

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"

	"github.com/Anurag02012004/ai-resume-project/pkg/app"
)

const (
	appName        = "resume-api"
	appDescription = `Resume API Service

A question answering service over a structured professional profile.

This server provides:
  - Profile data endpoints (projects, experience, skills, education, certificates)
  - Vector indexing of profile documents with embeddings
  - Natural-language question answering with graceful degradation`
)

// NewApp creates a new application instance.
func NewApp() *app.App {
	opts := NewOptions()

	return app.NewApp(
		app.WithName(appName),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return Run(opts)
		}),
	)
}

// Run runs the resume service with the given options.
func Run(opts *Options) error {
	fmt.Printf("Starting %s...\n", appName)

	opts.Log.AddInitialField("service.name", appName)
	opts.Log.AddInitialField("service.version", app.GetVersion())
	if err := opts.Log.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting resume service...")

	ctx := context.Background()
	server, err := NewServer(ctx, opts)
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
