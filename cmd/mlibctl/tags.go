package main

import (
	"fmt"

	"mlibctl/internal/errors"
	"mlibctl/internal/tagedit"
	"mlibctl/internal/tui"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func (c *cli) newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List and edit tags",
	}
	cmd.AddCommand(c.newTagsListCmd())
	cmd.AddCommand(c.newTagsEditCmd())
	return cmd
}

// library loads the server's tags
func (c *cli) library(cmd *cobra.Command) (*tagedit.Library, error) {
	gw, err := c.gateway()
	if err != nil {
		return nil, err
	}
	lib := tagedit.NewLibrary(gw)
	if err := lib.LoadTags(cmd.Context()); err != nil {
		return nil, userError(err, errors.UserMessage(err, "Failed to load tags"))
	}
	return lib, nil
}

func (c *cli) newTagsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tags",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := c.library(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tags := lib.Tags()
			if len(tags) == 0 {
				fmt.Fprintln(out, c.styles.Disabled.Render("No tags"))
				return nil
			}
			for _, t := range tags {
				swatch := " "
				if t.Color != "" {
					swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render("■")
				}
				line := fmt.Sprintf("%s %-12s %s", swatch, t.ID, c.styles.Emphasis.Render(t.Name))
				if t.Description != "" {
					line += c.styles.Help.Render("  " + t.Description)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func (c *cli) newTagsEditCmd() *cobra.Command {
	var (
		name        string
		color       string
		description string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id or name>",
		Short: "Change a tag's name, color or description",
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
			ctrl := tagedit.New(tag, gw, lib)

			flags := cmd.Flags()
			if flags.Changed("name") {
				ctrl.SetName(name)
			}
			if flags.Changed("description") {
				ctrl.SetDescription(description)
			}
			if flags.Changed("color") {
				if err := ctrl.SetColor(color); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if interactive {
				m := tui.NewTagModel(cmd.Context(), ctrl, c.styles)
				saved, err := tui.RunTag(cmd.Context(), m, c.cfgPath)
				if err != nil {
					return err
				}
				if !saved {
					fmt.Fprintln(out, c.styles.Disabled.Render("Tag not changed"))
					return nil
				}
			} else {
				if !ctrl.Changed() {
					fmt.Fprintln(out, c.styles.Disabled.Render("Nothing to change"))
					return nil
				}
				if err := ctrl.Save(cmd.Context()); err != nil {
					return userError(err, ctrl.ErrorMessage())
				}
			}

			saved := ctrl.Original()
			fmt.Fprintf(out, "%s %s\n", c.styles.Success.Render("✓ Tag updated:"), c.styles.Emphasis.Render(saved.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&color, "color", "", "new color as #RRGGBB")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the terminal tag dialog")

	return cmd
}
