package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/hurl/pkg/hurl"
	"github.com/abdul-hamid-achik/hurl/pkg/resolver"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <path>...",
	Short: "Show which route a path selects",
	Long: `Resolve one or more request paths against the compiled routes and
print the selected route with its captured parameters.

A leading "/" is ignored.

Examples:
  hurl match articles/1/2/
  hurl match /articles/7/comments/ --json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runMatch,
}

func runMatch(cmd *cobra.Command, args []string) {
	routes, _, err := compileRoutes(cfg)
	if err != nil {
		fail("failed to compile routes", err)
	}

	outputs, err := matchPaths(routes, cfg.CacheSize, args)
	if err != nil {
		fail("failed to match", err)
	}

	if jsonOutput {
		printSuccess(outputs)
	} else {
		for _, out := range outputs {
			printMatch(out)
		}
	}

	for _, out := range outputs {
		if !out.Matched {
			os.Exit(1)
		}
	}
}

func matchPaths(routes []hurl.Route, cacheSize int, paths []string) ([]MatchOutput, error) {
	r, err := resolver.New(routes, cacheSize)
	if err != nil {
		return nil, err
	}

	outputs := make([]MatchOutput, 0, len(paths))
	for _, p := range paths {
		path := strings.TrimPrefix(p, "/")
		m, ok, err := r.Resolve(path)
		if err != nil {
			return nil, err
		}
		out := MatchOutput{Path: path, Matched: ok}
		if ok {
			out.Pattern = m.Route.Pattern
			out.Target = hurl.TargetString(m.Route.Target)
			out.Name = m.QualifiedName()
			out.Params = m.Params
			out.Args = m.Args
			out.Namespaces = m.Namespaces
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func printMatch(out MatchOutput) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if !out.Matched {
		fmt.Printf("  %s /%s - no route\n", red("✗"), out.Path)
		return
	}

	fmt.Printf("  %s /%s\n", green("✓"), out.Path)
	fmt.Printf("    Pattern: %s\n", out.Pattern)
	fmt.Printf("    Target:  %s\n", out.Target)
	if out.Name != "" {
		fmt.Printf("    Name:    %s\n", cyan(out.Name))
	}

	keys := make([]string, 0, len(out.Params))
	for k := range out.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("    %s = %s\n", k, out.Params[k])
	}
	for i, a := range out.Args {
		fmt.Printf("    $%d = %s\n", i+1, a)
	}
}
