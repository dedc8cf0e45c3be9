// Package cli implements the tabletop command-line interface: the root
// command, configuration loading, and the interactive quotation table and
// shopping list sessions.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabletop/internal/logging"
	"github.com/mesh-intelligence/tabletop/internal/paths"
	"github.com/mesh-intelligence/tabletop/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errConfigLoad marks failures to resolve, read or validate configuration.
var errConfigLoad = errors.New("load config")

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	jsonMode  bool
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags rootFlags
	cfg   types.Config
}

// NewRootCmd creates the top-level "tabletop" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tabletop",
		Short: "Interactive quotation table and shopping list",
		Long: "Tabletop runs two small interactive tables in the terminal: a quotation\n" +
			"table and a shopping list with search and totals. Nothing is saved\n" +
			"between runs.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			if err := a.load(cmd); err != nil {
				return fmt.Errorf("%w: %w", errConfigLoad, err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newQuotesCmd(a))
	root.AddCommand(newShopCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		if errors.Is(err, errConfigLoad) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
}

// load resolves the config directory, reads config.yaml, and stores the
// logger for the command about to run in its context.
func (a *app) load(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	cfg, err := decodeConfig(v)
	if err != nil {
		return err
	}

	a.cfg = cfg
	logger := logging.NewWithWriter(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Prefix: "tabletop",
	}, cmd.ErrOrStderr())
	logger.Debug("config loaded", slog.String("dir", configDir))
	cmd.SetContext(logging.WithContext(cmd.Context(), logger))
	return nil
}
