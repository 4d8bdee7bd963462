package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"folderpick/internal/config"
	"folderpick/internal/log"
	"folderpick/internal/thumb"
	"folderpick/internal/tui"

	"github.com/spf13/cobra"
)

// browseNode is the node the browse command opens
const browseNode = "Folder File Pro"

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [directory]",
		Short: "Browse a directory in the picker panel",
		Long: `Open a Folder File Pro node and browse its panel. Without a directory
the panel starts where the node host last left off.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			return opts.runTUI(browseNode, dir)
		},
	}
}

func newNodeCmd(opts *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "node [type]",
		Short: "Edit a node in the terminal",
		Long: `Create a node of the given type and edit its widgets. Without a type a
list of every known node is shown to pick from.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeType := ""
			if len(args) > 0 {
				nodeType = args[0]
			}
			return opts.runTUI(nodeType, dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", "", "Starting directory for nodes with a directory input")

	return cmd
}

// runTUI owns the terminal until the user quits, so logs go to the
// configured file instead of stderr
func (o *rootOptions) runTUI(nodeType, dir string) error {
	cfg := o.cfg
	client, err := o.client()
	if err != nil {
		return err
	}
	registry, err := o.registry(client)
	if err != nil {
		return err
	}
	if nodeType != "" {
		if _, ok := registry.Def(nodeType); !ok {
			return fmt.Errorf("unknown node type %q (see 'folderpick nodes')", nodeType)
		}
	}

	if cfg.Logging.File != "" {
		log.Configure(log.WithFile(cfg.Logging.File), log.WithLevel(cfg.Logging.Level))
	} else {
		log.Configure(log.WithOutput(io.Discard))
	}

	var loader *thumb.Loader
	if cfg.Panel.Thumbnails {
		loader = thumb.NewLoader(client, cfg.Panel.ThumbCacheTTL)
	}

	watcher := o.watch()
	if watcher != nil {
		defer watcher.Stop()
	}

	m, err := tui.New(tui.Options{
		Config:    cfg,
		Registry:  registry,
		Loader:    loader,
		Watcher:   watcher,
		NodeType:  nodeType,
		Directory: strings.TrimSpace(dir),
	})
	if err != nil {
		return err
	}

	log.LogWithFields(log.F("node", nodeType), log.F("backend", client.BaseURL())).Info("starting tui")
	return tui.Run(m)
}

// watch starts a config watcher when the config file exists
func (o *rootOptions) watch() *config.Watcher {
	if _, err := os.Stat(o.cfgPath); err != nil {
		return nil
	}
	w, err := config.NewWatcher(o.cfgPath)
	if err != nil {
		log.LogWithError(err).Warn("config reload disabled")
		return nil
	}
	if err := w.Start(); err != nil {
		log.LogWithError(err).Warn("config reload disabled")
		return nil
	}
	return w
}
