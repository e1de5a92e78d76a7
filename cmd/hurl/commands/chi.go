package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var chiCmd = &cobra.Command{
	Use:   "chi",
	Short: "Print chi router patterns",
	Long: `Print the chi routing pattern each compiled route registers as.

Includes are shown as mounted sub-routers.

Examples:
  hurl chi
  hurl chi --json`,
	Args: cobra.NoArgs,
	Run:  runChi,
}

func runChi(cmd *cobra.Command, args []string) {
	routes, _, err := compileRoutes(cfg)
	if err != nil {
		fail("failed to compile routes", err)
	}

	outputs := newChiOutputs(routes)
	if jsonOutput {
		printSuccess(outputs)
		return
	}
	fmt.Println()
	writeChiTable(os.Stdout, outputs, "  ")
	fmt.Println()
}

func writeChiTable(w io.Writer, outputs []ChiRouteOutput, indent string) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, o := range outputs {
		if o.Mount {
			fmt.Fprintf(w, "%s%s %s\n", indent, yellow("Mount"), green(o.Pattern))
			writeChiTable(w, o.Routes, indent+"    ")
			continue
		}
		fmt.Fprintf(w, "%s%s %s  %s\n", indent, yellow("Handle"), green(o.Pattern), o.Target)
	}
}
