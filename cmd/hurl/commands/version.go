package commands

import (
	"fmt"

	"github.com/abdul-hamid-achik/hurl/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hurl version",
	Args:  cobra.NoArgs,
	// Skip config loading.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			printSuccess(map[string]string{"version": version.GetVersion()})
			return
		}
		fmt.Println(version.String())
	},
}
