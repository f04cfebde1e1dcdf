package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// flags shared by every subcommand that starts a server
type globalFlags struct {
	configPath  string
	logLevel    string
	metricsAddr string
}

// NewRootCommand builds the command tree. Running the root command without a
// subcommand starts the server, which is how MCP clients launch it.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "pixel-canvas-mcp",
		Short: "MCP server for editing pixel canvases with undo and redo",
		Long: `pixel-canvas-mcp serves a set of grid canvases over the Model Context
Protocol on stdin/stdout. Each canvas keeps a full edit history with
undo, redo and undo blocks that group many brush strokes into one step.

Configure it in your MCP client (e.g., Claude Desktop). Logs are written
to stderr.`,
		Version: versionString(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
		Args: cobra.NoArgs,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on host:port (overrides config)")

	root.AddCommand(newServeCommand(flags), newVersionCommand())
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	root := NewRootCommand()
	root.SilenceErrors = true
	root.SilenceUsage = true
	return root.Execute()
}

// SetVersionInfo sets the version information reported by the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}
