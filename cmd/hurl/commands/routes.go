package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/hurl/pkg/hurl"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List compiled routes",
	Long: `Compile the route file and list every route in dispatch order.

Examples:
  hurl routes
  hurl routes --json
  hurl routes --dump
  hurl routes --watch`,
	Args: cobra.NoArgs,
	Run:  runRoutes,
}

var (
	routesDump  bool
	routesWatch bool
)

func init() {
	routesCmd.Flags().BoolVar(&routesDump, "dump", false, "Dump full route records")
	routesCmd.Flags().BoolVarP(&routesWatch, "watch", "w", false, "Recompile when route files change")
}

func runRoutes(cmd *cobra.Command, args []string) {
	routes, files, err := compileRoutes(cfg)
	if err != nil {
		if !routesWatch {
			fail("failed to compile routes", err)
		}
		printCompileError(err)
	} else {
		printRoutes(os.Stdout, routes)
	}

	if routesWatch {
		if len(files) == 0 {
			files = []string{cfg.Routes}
		}
		watchRoutes(files)
	}
}

func printRoutes(w io.Writer, routes []hurl.Route) {
	if jsonOutput {
		printSuccess(RoutesOutput{
			File:        cfg.Routes,
			Routes:      newRouteOutputs(routes),
			TotalRoutes: countRoutes(routes),
		})
		return
	}

	if routesDump {
		cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cs.Fdump(w, routes)
		return
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "\n  %s Routes - %s\n\n", cyan("hurl"), cfg.Routes)
	writeRouteTable(w, routes, "  ")
	fmt.Fprintf(w, "\n  %s\n\n", dim(fmt.Sprintf("%d routes", countRoutes(routes))))
}

func writeRouteTable(w io.Writer, routes []hurl.Route, indent string) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	width := 0
	for _, r := range routes {
		if len(r.Pattern) > width {
			width = len(r.Pattern)
		}
	}

	for _, r := range routes {
		pad := strings.Repeat(" ", width-len(r.Pattern))
		if inc, ok := r.Target.(hurl.Include); ok {
			fmt.Fprintf(w, "%s%s%s  %s\n", indent, green(r.Pattern), pad, yellow(hurl.TargetString(inc)))
			writeRouteTable(w, inc.Routes, indent+"    ")
			continue
		}
		name := ""
		if r.Name != "" {
			name = dim(" (" + r.Name + ")")
		}
		fmt.Fprintf(w, "%s%s%s  %s%s\n", indent, green(r.Pattern), pad, hurl.TargetString(r.Target), name)
	}
}

func printCompileError(err error) {
	if jsonOutput {
		printJSONError(err)
		return
	}
	red := color.New(color.FgRed).SprintFunc()
	fmt.Printf("  %s %v\n", red("Error:"), err)
}

// watchRoutes recompiles and reprints routes whenever one of the files, or a
// YAML file next to them, changes. It returns on SIGINT or SIGTERM.
func watchRoutes(files []string) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fail("failed to create file watcher", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs := make(map[string]bool)
	for _, f := range files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := watcher.Add(dir); err != nil {
			fmt.Printf("  %s Failed to watch %s: %v\n", red("Error:"), dir, err)
		}
	}

	if !jsonOutput {
		fmt.Printf("  %s Watching for changes...\n", green("✓"))
	}

	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
	)
	debounceDuration := 100 * time.Millisecond

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ext := filepath.Ext(event.Name); ext != ".yaml" && ext != ".yml" {
				continue
			}

			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDuration, func() {
				mu.Lock()
				defer mu.Unlock()

				timestamp := time.Now().Format("15:04:05")
				if !jsonOutput {
					fmt.Printf("  [%s] %s Recompiling %s...\n", timestamp, yellow("→"), filepath.Base(event.Name))
				}
				routes, newFiles, err := compileRoutes(cfg)
				if err != nil {
					printCompileError(err)
					return
				}
				for _, f := range newFiles {
					if dir := filepath.Dir(f); !dirs[dir] {
						dirs[dir] = true
						_ = watcher.Add(dir)
					}
				}
				printRoutes(os.Stdout, routes)
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("  %s Watcher error: %v\n", red("Error:"), err)

		case <-signals:
			return
		}
	}
}
