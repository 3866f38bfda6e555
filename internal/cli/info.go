package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkessler/aurq/pkg/aur"
)

// newInfoCmd creates the info command for a single exact package name.
func newInfoCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show details for one AUR package",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			client, err := clientFromContext(ctx, opts)
			if err != nil {
				return err
			}

			spin := newSpinner(ctx, "Querying the AUR...")
			spin.Start()
			pkg, err := client.Info(ctx, args[0])
			spin.Stop()
			if err != nil {
				return err
			}
			if pkg == nil {
				return fmt.Errorf("package %q not found", args[0])
			}
			renderPackage(os.Stdout, pkg)
			return nil
		},
	}
}

// newMultiInfoCmd creates the multiinfo command, one request for several
// exact package names. Names the service does not know are silently absent
// from the result, so the command reports which ones came back.
func newMultiInfoCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "multiinfo <name>...",
		Short: "Show details for several AUR packages in one request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			logger := loggerFromContext(ctx)
			client, err := clientFromContext(ctx, opts)
			if err != nil {
				return err
			}

			spin := newSpinner(ctx, "Querying the AUR...")
			spin.Start()
			pkgs, err := client.MultiInfo(ctx, args)
			spin.Stop()
			if err != nil {
				return err
			}

			if len(pkgs) < len(args) {
				missing := missingNames(args, pkgs)
				for _, name := range missing {
					logger.Warnf("no such package: %s", name)
				}
			}
			renderPackages(os.Stdout, pkgs)
			return nil
		},
	}
}

// missingNames returns the requested names absent from the result,
// preserving request order.
func missingNames(requested []string, pkgs []aur.Package) []string {
	found := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		found[p.Name] = true
	}
	var missing []string
	for _, name := range requested {
		if !found[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
