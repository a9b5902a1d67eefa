package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/olivierh59500/network-field-go/config"
	"github.com/olivierh59500/network-field-go/field"
	"github.com/olivierh59500/network-field-go/game"
	"github.com/olivierh59500/network-field-go/logging"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	seed       int64
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "netfield",
		Short:        "animated particle network background",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "random seed (0 = config seed, then time-based)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	rootCmd.AddCommand(newHeadlessCmd(opts), newConfigCmd(opts))
	return rootCmd
}

// load reads the configuration and applies the flag overrides.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.seed != 0 {
		cfg.Field.Seed = o.seed
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger and random source.
func (o *rootOptions) setup() (*config.Config, *zap.Logger, *rand.Rand, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logging.New(cfg.Logging)

	seed := cfg.Field.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug("configuration loaded",
		zap.String("path", o.configPath),
		zap.Int64("seed", seed),
		zap.Int("particles", cfg.Field.Particles),
		zap.String("pairing", cfg.Links.Pairing),
	)
	return cfg, log, rand.New(rand.NewSource(seed)), nil
}

func runWindow(opts *rootOptions) error {
	cfg, log, rng, err := opts.setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	g := game.New(cfg.Window.Width, cfg.Window.Height, cfg.FieldParams(), log, field.WithRand(rng))
	log.Info("opening window",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("tps", cfg.Window.TPS),
	)
	if err := game.Run(g, cfg.Window.Title, cfg.Window.TPS); err != nil {
		log.Error("window closed with error", zap.Error(err))
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return config.Write(cmd.OutOrStdout(), cfg)
		},
	}
}
