package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

// versionString falls back to module build info when no version was
// stamped, so `go install`ed binaries still report something useful.
func versionString() string {
	v := version
	if info, ok := debug.ReadBuildInfo(); ok && v == "(devel)" {
		if mv := info.Main.Version; mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	return fmt.Sprintf("codecoach %s (%s %s/%s)", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
