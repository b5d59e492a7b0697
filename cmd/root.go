package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/prizegrid/config"
	"github.com/they4kman/prizegrid/game"
	"github.com/they4kman/prizegrid/locale"
	"github.com/they4kman/prizegrid/storage"
)

// app holds everything a subcommand needs once the root command has read
// its configuration.
type app struct {
	cfg       config.Config
	log       *logrus.Logger
	slot      storage.Slot
	closer    io.Closer
	store     *game.Store
	formatter *locale.Formatter

	flags struct {
		storage  storageValue
		path     string
		locale   string
		seed     int64
		logLevel string
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "prizegrid",
		Short: "Run a grid of hidden prize boxes",
		Long: `prizegrid hides a fixed number of prizes in a grid of boxes.
Players open boxes one at a time; the grid is saved after every change.

Start a 10x10 game with a single large prize
	prizegrid start -w 10 -h 10 --large 1 --small 5

Let the computer open boxes for you
	prizegrid play --limit 20
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Var(&a.flags.storage, "storage", `Storage backend holding the game.
file: one file per key in --path
sqlite: an SQLite database in --path
bolt: a bbolt database in --path
memory: nothing is kept once the command exits`)
	flags.StringVar(&a.flags.path, "path", "", "Data directory for on-disk storage backends")
	flags.StringVar(&a.flags.locale, "locale", "", "Language used to format prizes (nl, en)")
	flags.Int64Var(&a.flags.seed, "seed", 0, "Seed for grid generation, 0 draws a random one")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newStartCmd(a),
		newOpenCmd(a),
		newResetCmd(a),
		newStatusCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newPlayCmd(a),
		newServeCmd(a),
		newLangCmd(a),
	)

	return rootCmd
}

func Execute() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) (err error) {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("storage") {
		cfg.Storage = a.flags.storage.String()
	}
	if flags.Changed("path") {
		cfg.Path = a.flags.path
	}
	if flags.Changed("locale") {
		cfg.Locale = a.flags.locale
	}
	if flags.Changed("seed") {
		cfg.Seed = a.flags.seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	a.cfg = cfg

	if a.log, err = cfg.Logger(cmd.ErrOrStderr()); err != nil {
		return err
	}
	if a.slot, a.closer, err = cfg.OpenSlot(); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	rng, err := game.NewRand(cfg.Seed)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a.formatter, err = a.loadFormatter(ctx)
	if err != nil {
		return err
	}

	a.store = game.NewStore(a.slot,
		game.WithLogger(a.log),
		game.WithRand(rng),
		game.OnCelebrate(a.celebrate),
	)

	// A malformed save was already replaced by a fresh grid.
	if err := a.store.Load(ctx); err != nil && !errors.Is(err, game.ErrMalformedState) {
		return err
	}

	return nil
}

// run wraps a subcommand so the storage backend is closed once it returns.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.Join(err, a.close())
		}()
		return fn(cmd, args)
	}
}

func (a *app) loadFormatter(ctx context.Context) (*locale.Formatter, error) {
	if a.cfg.Locale != "" {
		return locale.NewFormatter(locale.Match(a.cfg.Locale)), nil
	}
	tag, err := locale.LoadTag(ctx, a.slot)
	if err != nil {
		return nil, err
	}
	return locale.NewFormatter(tag), nil
}

func (a *app) celebrate(box game.Box) {
	a.log.WithFields(logrus.Fields{
		"box":   box.ID,
		"prize": a.formatter.Prize(box.Prize),
	}).Info("prize found")
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

var storageBackends = []string{
	config.StorageFile,
	config.StorageSQLite,
	config.StorageBolt,
	config.StorageMemory,
}

type storageValue string

func (val *storageValue) String() string {
	return string(*val)
}

func (val *storageValue) Set(value string) error {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, backend := range storageBackends {
		if backend == value {
			*val = storageValue(value)
			return nil
		}
	}
	return fmt.Errorf("invalid storage backend, expected one of %s", strings.Join(storageBackends, ", "))
}

func (val *storageValue) Type() string {
	return "backend"
}
