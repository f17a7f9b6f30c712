package main

import (
	"fmt"

	"mlibctl/internal/errors"
	"mlibctl/internal/naming"

	"github.com/spf13/cobra"
)

func (c *cli) newNameCmd() *cobra.Command {
	var (
		date       string
		convention string
		template   string
		uploader   string
	)

	cmd := &cobra.Command{
		Use:   "name <title>",
		Short: "Print the folder names generated for a title",
		Long: `Print the folder name each naming convention generates for a title.
With --template, render a custom name instead; placeholders are ` + fmt.Sprint(naming.Placeholders()) + `.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			title := args[0]

			if template != "" {
				fmt.Fprintln(out, naming.Preview(template, naming.Fields{
					Title:      title,
					UploadDate: date,
					Uploader:   uploader,
				}))
				return nil
			}

			if convention != "" {
				conv, err := naming.ParseConvention(convention)
				if err != nil {
					return err
				}
				if conv == naming.Custom {
					return errors.NewInvalidInputError("convention", "custom names are typed, use --template")
				}
				fmt.Fprintln(out, naming.Generate(title, date, conv))
				return nil
			}

			for _, o := range naming.Conventions() {
				fmt.Fprintf(out, "%s %s\n", c.styles.Emphasis.Render(fmt.Sprintf("%-11s", o.Label)), naming.Generate(title, date, o.Value))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "upload date (YYYY-MM-DD or YYYYMMDD)")
	cmd.Flags().StringVarP(&convention, "convention", "c", "", "only print this convention (original, snake_case, kebab_case)")
	cmd.Flags().StringVarP(&template, "template", "t", "", "render a custom name template")
	cmd.Flags().StringVar(&uploader, "uploader", "", "uploader used by --template")

	return cmd
}
