// game is a tile-based side-scrolling platformer.
//
// Usage:
//
//	game play              - Play from the title screen
//	game replay <file>     - Run a recording headless and print the result
//	game check             - Validate every stage
//	game schema            - Print the JSON Schema of the stage format
//
// Global flags:
//
//	--configs <dir>   - Read configs from a directory instead of the bundled set
//	--log-level <lvl> - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds the global flags
type options struct {
	configDir string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "game",
		Short: "tilerunner - a tile-based side-scrolling platformer",
		Long: `tilerunner is a side-scrolling platformer: run right, stomp hostiles,
bump blocks and reach the flagpole before time runs out.

Examples:
  game play
  game play --stage 1 --record run.json
  game replay run.json --frames 600
  game check --configs ./configs`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configDir, "configs", "", "Config directory (default: bundled configs)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(newPlayCmd(opts))
	root.AddCommand(newReplayCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newSchemaCmd())
	return root
}

// newLogger creates the stderr logger for the chosen level
func (o *options) newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilerunner",
		Level:           level,
	})
	return logger, nil
}

// loader returns a config loader over the config directory or the bundled set
func (o *options) loader() (*config.Loader, error) {
	if o.configDir != "" {
		return config.NewLoader(o.configDir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// loadGame loads physics and the stage catalog
func (o *options) loadGame() (*config.GameConfig, *config.Catalog, error) {
	loader, err := o.loader()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, config.NewCatalog(loader, cfg.Stages), nil
}
