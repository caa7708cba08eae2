package cmd

import (
	"fmt"
	"strings"

	"github.com/flanksource/ftg-affect/internal/clangast"
	"github.com/spf13/cobra"
)

// version, commit, date and dirty are set at build time via
// -X github.com/flanksource/ftg-affect/cmd.version=... linker flags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	dirty   = "false"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long: `Print the version information including:
- Version number (from git tags)
- Git commit hash
- Build date and time
- Repository status (clean/dirty)
- Clang AST node kinds this build recognizes as methods`,
	Run: func(cmd *cobra.Command, args []string) {
		status := "clean"
		if dirty == "true" {
			status = "dirty"
		}
		fmt.Printf("ftg-affect version %s (commit: %s, built: %s, %s)\n", version, commit, date, status)
		fmt.Printf("recognized method kinds: %s\n", strings.Join(clangast.MethodKinds(), ", "))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
