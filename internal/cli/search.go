package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkessler/aurq/pkg/aur"
)

// newSearchCmd creates the search command.
// Results arrive in server-supplied order and are printed as-is; with
// --interactive they open in a scrollable browser instead.
func newSearchCmd(opts *rootOpts) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search the AUR by name or description",
		Long: `Search the AUR for packages matching a name or description pattern.

Examples:
  aurq search firefox
  aurq search -i "aur helper"   # browse results interactively`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSearch(c.Context(), opts, "search", args[0], interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse results interactively")
	return cmd
}

// newMSearchCmd creates the msearch command, which searches by maintainer
// instead of by name pattern.
func newMSearchCmd(opts *rootOpts) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "msearch <maintainer>",
		Short: "List AUR packages by maintainer",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSearch(c.Context(), opts, "msearch", args[0], interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse results interactively")
	return cmd
}

func runSearch(ctx context.Context, opts *rootOpts, op, arg string, interactive bool) error {
	logger := loggerFromContext(ctx)
	client, err := clientFromContext(ctx, opts)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spin := newSpinner(ctx, "Querying the AUR...")
	spin.Start()

	var pkgs []aur.Package
	switch op {
	case "msearch":
		pkgs, err = client.MSearch(ctx, arg)
	default:
		pkgs, err = client.Search(ctx, arg)
	}
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Found %d packages", len(pkgs)))

	if len(pkgs) == 0 {
		fmt.Println(styleDim.Render("no matches"))
		return nil
	}
	if interactive {
		return browsePackages(pkgs)
	}
	renderPackages(os.Stdout, pkgs)
	return nil
}
