package main

import (
	"context"
	"fmt"
	"strings"

	"mlibctl/internal/errors"
	"mlibctl/internal/export"
	"mlibctl/internal/gateway"
	"mlibctl/internal/naming"
	"mlibctl/internal/navigation"
	"mlibctl/internal/tui"

	"github.com/spf13/cobra"
)

type exportFlags struct {
	path            string
	name            string
	convention      string
	noNFO           bool
	simpleFilenames bool
	noNewFolder     bool
	interactive     bool
}

func (c *cli) newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export <uid>",
		Short: "Export a downloaded file into a folder on the server",
		Long: `Export a downloaded file into a folder on the server.

By default a new folder named after the file is created inside --path.
--name sets the folder name; it may be a template such as "{uploader} - {title}".
With --interactive the export dialog opens in the terminal instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gw, err := c.gateway()
			if err != nil {
				return err
			}
			file, err := gw.GetFile(ctx, args[0])
			if err != nil {
				return userError(err, errors.UserMessage(err, "File not found"))
			}
			nav, err := c.navigator(gw, c.cfg.Strategy())
			if err != nil {
				return err
			}
			opts, err := flags.apply(c.exportOptions())
			if err != nil {
				return err
			}

			if flags.interactive {
				return c.exportInteractive(cmd, *file, nav, gw, opts, flags)
			}
			return c.exportDirect(cmd, *file, nav, gw, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.path, "path", "p", "", "destination folder on the server (default is the export root)")
	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "folder name or template")
	cmd.Flags().StringVarP(&flags.convention, "convention", "c", "", "naming convention (original, snake_case, kebab_case)")
	cmd.Flags().BoolVar(&flags.noNFO, "no-nfo", false, "do not write an NFO metadata file")
	cmd.Flags().BoolVar(&flags.simpleFilenames, "simple-filenames", false, "use simple filenames inside the folder")
	cmd.Flags().BoolVar(&flags.noNewFolder, "no-new-folder", false, "export straight into --path")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "open the terminal export dialog")

	return cmd
}

// apply layers the command line over the configured defaults
func (f exportFlags) apply(opts export.Options) (export.Options, error) {
	if f.convention != "" {
		conv, err := naming.ParseConvention(f.convention)
		if err != nil {
			return opts, err
		}
		opts.Convention = conv
	}
	if f.noNFO {
		opts.IncludeNFO = false
	}
	if f.simpleFilenames {
		opts.UseSimpleFilenames = true
	}
	if f.noNewFolder {
		opts.CreateNewFolder = false
	}
	return opts, nil
}

// prepare moves the navigator to --path and types --name
func (f exportFlags) prepare(ctx context.Context, ctrl *export.Controller) error {
	nav := ctrl.Navigator()
	if strings.Trim(f.path, "/") != "" {
		if err := nav.NavigateTo(ctx, gateway.Folder{Path: f.path}); err != nil {
			return userError(err, nav.ErrorMessage())
		}
	}
	if f.name != "" {
		ctrl.SetFolderName(f.name)
	}
	return nil
}

func (c *cli) exportDirect(cmd *cobra.Command, file gateway.File, nav *navigation.Navigator, gw gateway.Gateway, opts export.Options, flags exportFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	ctrl := export.New(file, nav, gw, c.notifier(out), opts)
	defer ctrl.Close()
	if err := flags.prepare(ctx, ctrl); err != nil {
		return err
	}
	if p := ctrl.Preview(); p != "" {
		fmt.Fprintln(out, c.styles.Help.Render("Folder name: "+p))
	}

	if err := ctrl.Submit(ctx); err != nil {
		return userError(err, ctrl.ExportError())
	}
	ctrl.Close()
	c.printResult(cmd, <-ctrl.Done())
	return nil
}

func (c *cli) exportInteractive(cmd *cobra.Command, file gateway.File, nav *navigation.Navigator, gw gateway.Gateway, opts export.Options, flags exportFlags) error {
	ctx := cmd.Context()
	status := tui.NewNotifier(c.styles)
	ctrl := export.New(file, nav, gw, status, opts)
	if err := flags.prepare(ctx, ctrl); err != nil {
		return err
	}

	m := tui.NewExportModel(ctx, ctrl, status, c.styles)
	r, err := tui.RunExport(ctx, m, c.cfgPath)
	if err != nil {
		return err
	}
	c.printResult(cmd, r)
	return nil
}

func (c *cli) printResult(cmd *cobra.Command, r export.Result) {
	out := cmd.OutOrStdout()
	if !r.Exported {
		fmt.Fprintln(out, c.styles.Disabled.Render("Export cancelled"))
		return
	}
	fmt.Fprintf(out, "Exported to %s\n", c.styles.Emphasis.Render(r.Path))
}
