package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/andresuchdata/reslink/internal/config"
	"github.com/andresuchdata/reslink/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn().Err(err).Msg("could not load .env file")
	}

	app := &cli.App{
		Name:  "reslink",
		Usage: "Link PDFs in the resources bucket to their courses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Extra dotenv file to read before the environment",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "root-prefix",
				Usage:   "Prefix to start scanning from",
				EnvVars: []string{"LINK_ROOT_PREFIX"},
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Resolve courses but do not insert rows",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "refresh-cache",
				Usage: "Drop cached course ids before the run",
				Value: false,
			},
		},
		Before: func(c *cli.Context) error {
			if c.IsSet("log-level") {
				logger.SetLevel(c.String("log-level"))
			}
			return nil
		},
		Action: runLink,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Print the PDF paths that would be linked",
				Action: runList,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		stop()
		logger.Log.Fatal().Err(err).Msg("reslink failed")
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, err
	}
	if !c.IsSet("log-level") {
		logger.SetLevel(cfg.LogLevel)
	}
	if c.IsSet("root-prefix") {
		cfg.Link.RootPrefix = strings.Trim(strings.TrimSpace(c.String("root-prefix")), "/")
	}
	return cfg, nil
}

func runLink(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx := c.Context
	deps, err := wire(ctx, cfg, c.Bool("dry-run"))
	if err != nil {
		return err
	}
	defer deps.Close()

	if c.Bool("refresh-cache") && deps.courseCache != nil {
		n, err := deps.courseCache.Flush(ctx)
		if err != nil {
			return err
		}
		logger.Log.Info().Int("keys", n).Msg("Course cache flushed")
	}

	_, err = deps.runner.Run(ctx)
	return err
}

func runList(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	lister, err := newLister(c.Context, cfg)
	if err != nil {
		return err
	}

	files, err := lister.ListFiles(c.Context, cfg.Link.RootPrefix)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintln(c.App.Writer, f)
	}
	logger.Log.Info().Int("count", len(files)).Msgf("Found %d PDF files", len(files))
	return nil
}
