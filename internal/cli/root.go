// Package cli provides the command-line interface for tonal.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/config"
	"github.com/jmylchreest/tonal/internal/plugin/manager"
	"github.com/jmylchreest/tonal/internal/store"
	"github.com/jmylchreest/tonal/internal/tokens"
	"github.com/jmylchreest/tonal/internal/version"
)

var (
	// Global flags
	globalVerbose bool
	globalQuiet   bool
	globalConfig  string
	globalTheme   string
	globalNoSave  bool

	// Logger shared by all commands, configured in setup.
	logger hclog.Logger = hclog.NewNullLogger()

	// Project configuration, loaded in setup. Empty when no project file exists.
	projectConfig = &config.Config{}

	// Shared exporter manager instance used by all commands
	sharedManager *manager.Manager

	// Errors from building sharedManager, logged by setup.
	startupErrors []error

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "tonal",
		Short: "A design-token colour engine",
		Long: `Tonal generates a ten-step perceptual colour ramp from a single seed colour,
checks WCAG contrast between colours and across gradients, and exports the
result as Tailwind, CSS custom property or JSON design tokens.

Settings are read from a tonal.yaml (or .yml, .toml, .json) project file in
the working directory. The working state is kept between runs.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

// NewRootCmd returns the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	sharedManager.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// External exporters named in the environment are known before flags are
	// parsed so their flags can be registered. Project file plugins are added
	// in setup.
	sharedManager, startupErrors = newSharedManager()
	registerPluginFlags()

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&globalConfig, "config", "c", "", "project file (default: tonal.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&globalTheme, "theme", "", "theme mode used to resolve colour variables (light, dark)")
	rootCmd.PersistentFlags().BoolVar(&globalNoSave, "no-save", false, "do not persist state changes")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// newSharedManager builds the exporter manager from the environment. Errors
// are returned for logging once the logger exists; the manager always holds
// the built-in exporters.
func newSharedManager() (*manager.Manager, []error) {
	var errs []error
	if err := config.LoadDotEnv(); err != nil {
		errs = append(errs, err)
	}
	envCfg := &config.Config{}
	if err := config.ApplyEnv(envCfg); err != nil {
		errs = append(errs, fmt.Errorf("environment: %w", err))
	}
	m, err := manager.NewBuilder().
		WithConfig(manager.Config{External: envCfg.Plugins}).
		Build()
	if err != nil {
		errs = append(errs, fmt.Errorf("plugins: %w", err))
	}
	return m, errs
}

// registerPluginFlags registers exporter-specific flags with the export command.
func registerPluginFlags() {
	for _, name := range sharedManager.List() {
		p, _ := sharedManager.Get(name)
		p.RegisterFlags(exportCmd)
	}
}

// setup configures logging and loads the project file before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	logger = newLogger(cmd.ErrOrStderr(), globalVerbose, globalQuiet)
	for _, err := range startupErrors {
		logger.Debug("plugin flag registration", "error", err)
	}
	startupErrors = nil

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := loadProjectConfig(globalConfig, ".")
	if err != nil {
		return err
	}
	if globalTheme != "" {
		cfg.Theme = globalTheme
	}
	if _, err := tokens.ParseMode(cfg.Theme); err != nil {
		return err
	}
	projectConfig = cfg

	for name, path := range cfg.Plugins {
		if ext, ok := sharedManager.Get(name); ok && sharedManager.IsExternal(name) {
			if ep, isExt := ext.(*manager.ExternalPlugin); isExt && ep.Path() == path {
				continue
			}
		}
		if err := sharedManager.RegisterExternalPlugin(name, path); err != nil {
			return fmt.Errorf("plugin %q: %w", name, err)
		}
	}
	return nil
}

// newLogger builds the CLI logger. Quiet wins over verbose.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tonal",
		Level:  level,
		Output: w,
	})
}

// loadProjectConfig reads the project file. An explicit path must exist; a
// discovered one is optional. Environment overrides are applied either way.
func loadProjectConfig(path, dir string) (*config.Config, error) {
	if path == "" {
		found, err := config.Discover(dir)
		switch {
		case err == nil:
			path = found
		case errors.Is(err, config.ErrNoConfig):
		default:
			return nil, err
		}
	}

	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Debug("loaded project file", "path", path)
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// statePath returns the state file location for cfg.
func statePath(cfg *config.Config) (string, error) {
	dir := cfg.StateDir
	if dir == "" {
		var err error
		if dir, err = store.DefaultStateDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, store.StateFileName), nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}
