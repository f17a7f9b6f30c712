package main

import (
	"fmt"
	"strings"

	"mlibctl/internal/gateway"
	"mlibctl/internal/navigation"

	"github.com/spf13/cobra"
)

func (c *cli) newFoldersCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "folders [path]",
		Short: "List export folders on the server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy := c.cfg.Strategy()
			if source != "" {
				s, err := navigation.ParseStrategy(source)
				if err != nil {
					return err
				}
				strategy = s
			}

			gw, err := c.gateway()
			if err != nil {
				return err
			}
			nav, err := c.navigator(gw, strategy)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if len(args) == 1 && strings.Trim(args[0], "/") != "" {
				err = nav.NavigateTo(ctx, gateway.Folder{Path: args[0]})
			} else {
				err = nav.Load(ctx)
			}
			if err != nil {
				return userError(err, nav.ErrorMessage())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, c.styles.Title.Render(nav.Display()))
			folders := nav.Folders()
			if len(folders) == 0 {
				fmt.Fprintln(out, c.styles.Disabled.Render("  (no folders)"))
				return nil
			}
			for _, f := range folders {
				line := "  " + f.Name + "/"
				if f.IsSymlink {
					line += c.styles.Help.Render(" -> symlink")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "how folders are fetched: tree (whole tree once) or lazy (one level at a time)")

	return cmd
}
