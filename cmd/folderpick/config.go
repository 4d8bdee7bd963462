package main

import (
	"fmt"
	"os"
	"slices"

	"folderpick/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(newConfigInitCmd(opts))
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigThemesCmd())

	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var (
		force bool
		theme string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.cfgPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", opts.cfgPath)
			}

			cfg := config.New()
			if opts.server != "" {
				cfg.Backend.URL = opts.server
			}
			if theme != "" {
				if !slices.Contains(config.ListThemes(), theme) {
					return fmt.Errorf("unknown theme %q", theme)
				}
				cfg.ApplyTheme(theme)
			}
			if err := config.SaveConfig(cfg, opts.cfgPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successText("Wrote "+opts.cfgPath))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().StringVarP(&theme, "theme", "t", "", "Theme to start with (see 'folderpick config themes')")

	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(opts.cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, dimText("# "+opts.cfgPath))
			_, err = out.Write(data)
			return err
		},
	}
}

func newConfigThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListThemes() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
