package main

import (
	"fmt"
	"io"

	"mlibctl/internal/config"
	"mlibctl/internal/errors"
	"mlibctl/internal/export"
	"mlibctl/internal/gateway"
	"mlibctl/internal/log"
	"mlibctl/internal/navigation"
	"mlibctl/internal/tui"
	"mlibctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	cfgFile string
	server  string
	debug   bool
}

// cli carries what every subcommand needs once the root has loaded the
// configuration
type cli struct {
	flags   rootFlags
	cfg     *config.Config
	cfgPath string
	styles  styles.Styles
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	c := &cli{styles: styles.Theme}

	rootCmd := &cobra.Command{
		Use:   "mlibctl",
		Short: "Export media library files and edit tags",
		Long: `mlibctl talks to a media library server. It exports downloaded files
into folders on the server, names those folders and edits tags, from the
command line, a terminal dialog or a desktop window.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	rootCmd.PersistentFlags().StringVar(&c.flags.cfgFile, "config", "", "config file (default is $HOME/.config/mlibctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&c.flags.server, "server", "", "media library server URL (overrides the config file)")
	rootCmd.PersistentFlags().BoolVar(&c.flags.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(c.newNameCmd())
	rootCmd.AddCommand(c.newFoldersCmd())
	rootCmd.AddCommand(c.newExportCmd())
	rootCmd.AddCommand(c.newTagsCmd())
	rootCmd.AddCommand(c.newGUICmd())
	rootCmd.AddCommand(c.newConfigCmd())

	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	log.SetDebug(c.flags.debug)

	c.cfgPath = c.flags.cfgFile
	if c.cfgPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return errors.Wrap(err, "locating config file")
		}
		c.cfgPath = path
	}

	cfg, err := config.LoadConfigFile(c.cfgPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Using default settings. Run 'mlibctl config init' to create a config file.")
		cfg = config.New()
	}
	if c.flags.server != "" {
		cfg.Server.URL = c.flags.server
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	c.cfg = cfg
	c.styles = tui.ThemeFromConfig(cfg.Theme)
	return nil
}

// gateway builds the HTTP client for the configured server
func (c *cli) gateway() (gateway.Gateway, error) {
	return gateway.NewClient(c.cfg.Server.URL,
		gateway.WithAPIKey(c.cfg.Server.APIKey),
		gateway.WithTimeout(c.cfg.Timeout()),
	)
}

// navigator builds the folder browser for strategy, hiding the configured
// folders
func (c *cli) navigator(gw gateway.Gateway, strategy navigation.Strategy) (*navigation.Navigator, error) {
	src, err := navigation.NewSource(strategy, gw)
	if err != nil {
		return nil, err
	}
	if len(c.cfg.Export.HiddenFolders) > 0 {
		filtered, err := navigation.NewFilter(src, c.cfg.Export.HiddenFolders)
		if err != nil {
			return nil, err
		}
		src = filtered
	}
	return navigation.New(src), nil
}

// exportOptions are the dialog defaults from the config file
func (c *cli) exportOptions() export.Options {
	return export.Options{
		IncludeNFO:         c.cfg.Export.IncludeNFO,
		UseSimpleFilenames: c.cfg.Export.UseSimpleFilenames,
		CreateNewFolder:    c.cfg.Export.CreateNewFolder,
		Convention:         c.cfg.Convention(),
		CloseDelay:         c.cfg.CloseDelay(),
	}
}

// notifier prints notices to out
func (c *cli) notifier(out io.Writer) gateway.Notifier {
	return gateway.NotifierFunc(func(msg string) {
		fmt.Fprintln(out, c.styles.Success.Render("✓ "+msg))
	})
}

// userError reports msg to the user and keeps err's detail for the debug log
func userError(err error, msg string) error {
	if msg == "" {
		return err
	}
	log.LogWithError(err).Debug(msg)
	return errors.New(msg)
}
