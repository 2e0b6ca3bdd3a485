package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ganot/unolims/internal/app"
	"github.com/ganot/unolims/internal/config"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// noApp marks commands that run without the API client and preference store.
const noApp = "no-app"

// cli is the state shared by every command of one invocation.
type cli struct {
	configPath string
	apiURL     string
	lang       string
	logLevel   string

	app      *app.App
	logger   *zap.Logger
	logClose func() error
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	c := &cli{}
	defer c.close()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "unolims",
		Short:         "Terminal client for the UNO LIMS",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[noApp] != "" {
				return nil
			}
			return c.setup(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "YAML config file (default $UNOLIMS_CONFIG_PATH)")
	flags.StringVar(&c.apiURL, "api-url", "", "LIMS API base URL")
	flags.StringVar(&c.lang, "lang", "", "language for this run only (english, portuguese, pt-BR, en-US)")
	flags.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newOpenCmd(c),
		newShellCmd(c),
		newRoutesCmd(),
		newLangCmd(c),
		newQRCmd(c),
		newScanCmd(c),
	)
	return root
}

func (c *cli) setup(ctx context.Context) error {
	load := config.Load
	if c.configPath != "" {
		load = func() (config.Config, error) { return config.LoadFrom(c.configPath) }
	}
	cfg, err := load()
	if err != nil {
		return err
	}
	if c.apiURL != "" {
		cfg.API.BaseURL = c.apiURL
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}

	logger, logClose, err := logging.FromConfig(cfg.Log, "unolims")
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	c.logger, c.logClose = logger, logClose

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	c.app = a

	if c.lang != "" {
		lang, ok := i18n.Match(c.lang)
		if !ok {
			return fmt.Errorf("unsupported language %q", c.lang)
		}
		a.Router.SetCatalog(i18n.MustLookup(lang))
	}
	return nil
}

func (c *cli) close() {
	if c.app != nil {
		if err := c.app.Close(); err != nil {
			c.logger.Warn("closing preference store", zap.Error(err))
		}
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	if c.logClose != nil {
		_ = c.logClose()
	}
}

func (c *cli) catalog() i18n.Catalog {
	return c.app.Router.Catalog()
}
