package commands

import (
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/hurl/pkg/openapi"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Generate an OpenAPI document",
	Long: `Generate an OpenAPI 3 document with one GET operation per route.

Path parameters carry their matcher as a schema pattern.

Examples:
  hurl openapi
  hurl openapi --format yaml --output openapi.yaml
  hurl openapi --title "News API" --version 2.0.0`,
	Args: cobra.NoArgs,
	Run:  runOpenAPI,
}

var (
	openapiOutput  string
	openapiFormat  string
	openapiTitle   string
	openapiVersion string
	openapiDesc    string
)

func init() {
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "", "Output file (default: stdout)")
	openapiCmd.Flags().StringVarP(&openapiFormat, "format", "f", "json", "Output format (json or yaml)")
	openapiCmd.Flags().StringVar(&openapiTitle, "title", "", "API title")
	openapiCmd.Flags().StringVar(&openapiVersion, "version", "", "API version")
	openapiCmd.Flags().StringVar(&openapiDesc, "description", "", "API description")
}

func runOpenAPI(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()

	routes, _, err := compileRoutes(cfg)
	if err != nil {
		fail("failed to compile routes", err)
	}

	gen := openapi.NewGenerator(openapi.Config{
		Title:       openapiTitle,
		Version:     openapiVersion,
		Description: openapiDesc,
	})

	if openapiOutput == "" {
		data, err := gen.Marshal(routes, openapiFormat)
		if err != nil {
			fail("failed to generate OpenAPI document", err)
		}
		_, _ = os.Stdout.Write(data)
		return
	}

	if err := gen.WriteToFile(routes, openapiOutput, openapiFormat); err != nil {
		fail("failed to write OpenAPI document", err)
	}
	if jsonOutput {
		printSuccess(map[string]any{"output": openapiOutput, "format": openapiFormat, "routes": countRoutes(routes)})
		return
	}
	fmt.Printf("  %s Wrote %s (%d routes)\n", green("✓"), openapiOutput, countRoutes(routes))
}
