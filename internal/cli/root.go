package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkessler/aurq/pkg/aur"
	"github.com/mkessler/aurq/pkg/buildinfo"
)

// rootOpts holds the persistent flags shared by all commands.
type rootOpts struct {
	configPath string // --config: explicit TOML config file
	verbose    bool   // --verbose: debug-level logging
}

// Execute runs the aurq CLI with a background context.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the aurq CLI and returns an error if any command fails.
//
// The root command wires up the four RPC operations as subcommands and
// attaches a charm logger to the context; --verbose switches it to debug
// level, which also surfaces the RPC client's per-request logs.
func ExecuteContext(ctx context.Context) error {
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:          "aurq",
		Short:        "aurq queries the Arch User Repository",
		Long:         `aurq is a client for the AUR RPC service. It searches packages by name pattern or maintainer and looks up package details, one request per invocation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/aurq/config.toml)")

	root.AddCommand(newSearchCmd(opts))
	root.AddCommand(newMSearchCmd(opts))
	root.AddCommand(newInfoCmd(opts))
	root.AddCommand(newMultiInfoCmd(opts))

	return root.ExecuteContext(ctx)
}

// clientFromContext loads the config and builds an RPC client wired to the
// context logger.
func clientFromContext(ctx context.Context, opts *rootOpts) (*aur.Client, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	return newRPCClient(cfg, loggerFromContext(ctx))
}
