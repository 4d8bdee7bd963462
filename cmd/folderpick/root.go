package main

import (
	"context"
	"fmt"
	"time"

	"folderpick/internal/backend"
	"folderpick/internal/config"
	"folderpick/internal/extensions"
	"folderpick/internal/host"
	"folderpick/internal/log"

	"github.com/spf13/cobra"
)

const banner = `
 ▞ folderpick
`

// requestTimeout bounds the one-shot backend calls made by the CLI
const requestTimeout = 15 * time.Second

// rootOptions is the state shared by every subcommand
type rootOptions struct {
	cfgFile string
	server  string
	catalog string
	debug   bool

	cfg     *config.Config
	cfgPath string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "folderpick",
		Short: "Browse and pick files served by a node host",
		Long: banner + `
folderpick drives the file and color picker nodes of a node host from the
terminal: browse directories with thumbnails, pick a file and hand its
index back to the node.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/folderpick/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.server, "server", "", "node host URL, overrides backend.url")
	rootCmd.PersistentFlags().StringVar(&opts.catalog, "catalog", "", "directory of extra node catalog files (*.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write debug entries to the log")

	rootCmd.AddCommand(newBrowseCmd(opts))
	rootCmd.AddCommand(newNodeCmd(opts))
	rootCmd.AddCommand(newNodesCmd(opts))
	rootCmd.AddCommand(newLsCmd(opts))
	rootCmd.AddCommand(newFontsCmd(opts))
	rootCmd.AddCommand(newColorsCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// load reads the configuration and sets up stderr logging. A broken
// config file falls back to the defaults with a warning.
func (o *rootOptions) load(cmd *cobra.Command) error {
	path := o.cfgFile
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return fmt.Errorf("locating config: %w", err)
		}
	}
	o.cfgPath = path

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), warningText(fmt.Sprintf("Warning: %v", err)))
		fmt.Fprintln(cmd.ErrOrStderr(), infoText("Using default settings. Run 'folderpick config init' to write a config file."))
		cfg = config.New()
	}

	if o.server != "" {
		cfg.Backend.URL = o.server
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}
	log.SetDebug(o.debug)
	log.Configure(log.WithOutput(cmd.ErrOrStderr()), log.WithLevel(cfg.Logging.Level))
	setTheme(cfg)

	o.cfg = cfg
	return nil
}

// registry loads the built-in node catalog plus --catalog and registers
// the extensions against client
func (o *rootOptions) registry(client *backend.Client) (*host.Registry, error) {
	r, err := host.NewRegistry()
	if err != nil {
		return nil, err
	}
	if o.catalog != "" {
		if err := r.LoadCatalogDir(o.catalog); err != nil {
			return nil, err
		}
	}
	if err := extensions.Register(r, client, o.cfg); err != nil {
		return nil, err
	}
	return r, nil
}

func (o *rootOptions) client() (*backend.Client, error) {
	return backend.NewClient(o.cfg)
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, requestTimeout)
}
