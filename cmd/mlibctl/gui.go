package main

import (
	"fmt"

	"mlibctl/internal/errors"
	"mlibctl/internal/export"
	"mlibctl/internal/gui"
	"mlibctl/internal/tagedit"

	"github.com/spf13/cobra"
)

func (c *cli) newGUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop dialogs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd, args); err != nil {
				return err
			}
			if !gui.IsGUIAvailable() {
				return gui.ErrUnavailable
			}
			return nil
		},
	}
	cmd.AddCommand(c.newGUIExportCmd())
	cmd.AddCommand(c.newGUITagCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "settings",
		Short: "Edit the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.New(c.cfg, c.cfgPath).ShowSettings()
		},
	})
	return cmd
}

func (c *cli) newGUIExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <uid>",
		Short: "Open the export window for a file",
		Args:  cobra.ExactArgs(1),
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

			app := gui.New(c.cfg, c.cfgPath)
			ctrl := export.New(*file, nav, gw, app, c.exportOptions())
			r, err := app.ShowExportDialog(ctx, ctrl)
			if err != nil {
				return err
			}
			c.printResult(cmd, r)
			return nil
		},
	}
}

func (c *cli) newGUITagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id or name>",
		Short: "Open the tag edit window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := c.gateway()
			if err != nil {
				return err
			}
			lib, err := c.library(cmd)
			if err != nil {
				return err
			}
			tag, err := lib.Find(args[0])
			if err != nil {
				return err
			}

			app := gui.New(c.cfg, c.cfgPath)
			saved, err := app.ShowTagDialog(cmd.Context(), tagedit.New(tag, gw, lib))
			if err != nil {
				return err
			}
			if saved {
				fmt.Fprintln(cmd.OutOrStdout(), c.styles.Success.Render("✓ Tag updated"))
			}
			return nil
		},
	}
}
