// Package commands provides the CLI commands for hurl.
package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/abdul-hamid-achik/hurl/internal/config"
	"github.com/abdul-hamid-achik/hurl/internal/version"
	"github.com/abdul-hamid-achik/hurl/pkg/hurl"
	"github.com/abdul-hamid-achik/hurl/pkg/routefile"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hurl",
	Short: "hurl - compile nested URL trees into route tables",
	Long: `hurl compiles a nested YAML mapping of path segments to views into a
flat, ordered list of anchored route patterns.

Quick Start:
  hurl routes            List compiled routes
  hurl match articles/1/ Show which route a path selects
  hurl chi               Print chi router patterns
  hurl openapi           Generate an OpenAPI document

Configuration is read from hurl.yaml, HURL_* environment variables and .env.`,
	Version:           version.GetVersion(),
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

var (
	configPath string
	routesFile string
	noColor    bool
	verbose    bool

	cfg *config.Config
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for automation)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./hurl.yaml)")
	rootCmd.PersistentFlags().StringVarP(&routesFile, "routes", "r", "", "Route file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every compiled route")

	// Commands
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(chiCmd)
	rootCmd.AddCommand(openapiCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if routesFile != "" {
		c.Routes = routesFile
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = c
	return nil
}

// compileRoutes loads and compiles the configured route file. It also
// returns every file that was read, for watching.
func compileRoutes(c *config.Config) ([]hurl.Route, []string, error) {
	var opts []hurl.Option
	if verbose {
		opts = append(opts, hurl.WithLogger(log.New(os.Stderr, "hurl: ", 0)))
	}
	loader := routefile.NewLoader(c.NewHurl(opts...))
	routes, err := loader.Routes(c.Routes, c.ViewPrefix)
	return routes, loader.Files(), err
}

// fail reports err in the active output mode and exits.
func fail(prefix string, err error) {
	if jsonOutput {
		printJSONError(fmt.Errorf("%s: %w", prefix, err))
	} else {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Printf("  %s %s: %v\n", red("Error:"), prefix, err)
	}
	os.Exit(1)
}
