// Package cmd wires the cobra command tree for the techdocs CLI.
package cmd

import "github.com/spf13/cobra"

// Version is injected at build time via -ldflags.
var Version = "dev"

// NewRootCommand builds the root techdocs command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "techdocs",
		Short: "Sync documentation from source repos into a docs tree",
		Long: `techdocs mirrors selected files from a source repository into a
destination documentation tree, enriching Markdown with frontmatter,
rendering PlantUML diagrams to SVG, and bundling OpenAPI specs to a
single self-contained JSON document.`,
		Version:      Version,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewCopyCommand())
	return cmd
}
